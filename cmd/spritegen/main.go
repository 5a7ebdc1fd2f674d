package main

import (
	"fmt"
	"os"
	"strings"

	"pixel-invaders/internal/sprite"
)

var allIDs = []sprite.ID{
	sprite.Squid, sprite.Crab, sprite.Octopus,
	sprite.Cannon, sprite.Shield, sprite.Bullet, sprite.Laser,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "export":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: spritegen export <out-dir>")
			os.Exit(1)
		}
		runExport(args[0])
	case "check":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: spritegen check <sprites-dir>")
			os.Exit(1)
		}
		os.Exit(runCheck(args[0]))
	case "viz":
		if len(args) > 1 {
			fmt.Fprintln(os.Stderr, "Usage: spritegen viz [name]")
			os.Exit(1)
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		runViz(name)
	case "stats":
		runStats()
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: spritegen all <out-dir>")
			os.Exit(1)
		}
		runExport(args[0])
		fmt.Println()
		if code := runCheck(args[0]); code != 0 {
			os.Exit(code)
		}
		fmt.Println()
		runStats()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: spritegen <command> [args]

Commands:
  export <out-dir>      Write the built-in frames to out-dir as editable PNGs
  check  <sprites-dir>  Verify a directory of PNG overrides loads cleanly
  viz    [name]         Render sprite frames as colored terminal art
  stats                 Show frame counts and pixel coverage per sprite
  all    <out-dir>      Run export + check + stats`)
}

func mustLoad() *sprite.Assets {
	assets, err := sprite.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return assets
}

// --- export ---

func runExport(dir string) {
	assets := mustLoad()

	total := 0
	for _, id := range allIDs {
		total += assets.Template(id).FrameCount()
	}

	fmt.Printf("Exporting %d frames to %s...\n", total, dir)
	if err := sprite.ExportDir(assets, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done. Edit the PNGs and load them with -sprites (desktop) or sprites_dir (server config).")
}

// --- check ---

func runCheck(dir string) int {
	assets, err := sprite.LoadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	for _, id := range allIDs {
		tpl := assets.Template(id)
		w, h := tpl.Size()
		fmt.Printf("  OK %-8s %d frame(s), %dx%d\n", tpl.Name, tpl.FrameCount(), w, h)
	}
	fmt.Printf("\nAll %d sprites load cleanly from %s\n", len(allIDs), dir)
	return 0
}

// --- viz ---

func runViz(name string) {
	assets := mustLoad()

	shown := 0
	for _, id := range allIDs {
		tpl := assets.Template(id)
		if name != "" && tpl.Name != name {
			continue
		}
		shown++
		w, h := tpl.Size()
		fmt.Printf("%s (%dx%d, %d frames)\n", tpl.Name, w, h, tpl.FrameCount())
		for fi := range tpl.Frames {
			f := &tpl.Frames[fi]
			fmt.Printf("frame %d:\n", fi)
			for y := 0; y < f.H; y++ {
				for x := 0; x < f.W; x++ {
					if !f.OpaqueAt(x, y) {
						fmt.Print("  ")
						continue
					}
					i := (y*f.W + x) * 4
					fmt.Printf("\033[38;2;%d;%d;%dm██\033[0m", f.Pix[i], f.Pix[i+1], f.Pix[i+2])
				}
				fmt.Println()
			}
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Fprintf(os.Stderr, "Error: no sprite named %q\n", name)
		os.Exit(1)
	}
}

// --- stats ---

func runStats() {
	assets := mustLoad()

	fmt.Println("Sprite pixel coverage (opaque / total per first frame):")
	for _, id := range allIDs {
		tpl := assets.Template(id)
		f := &tpl.Frames[0]
		opaque := 0
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				if f.OpaqueAt(x, y) {
					opaque++
				}
			}
		}
		total := f.W * f.H
		pct := float64(opaque) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/4))
		fmt.Printf("  %-8s %3d/%3d (%5.1f%%) %s\n", tpl.Name, opaque, total, pct, bar)
	}
}
