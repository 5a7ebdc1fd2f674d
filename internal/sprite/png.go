package sprite

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

// LoadDir is Load plus per-sprite PNG overrides from dir. Override files
// are named <sprite>_f<N>.png and must match the built-in frame size.
// Sprites with no files in dir keep their built-in art; a sprite with only
// some frames present keeps the built-in art for the missing ones.
func LoadDir(dir string) (*Assets, error) {
	a, err := Load()
	if err != nil {
		return nil, err
	}
	if err := a.overrideFromDir(dir); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Assets) overrideFromDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("sprite dir %s: %w", dir, err)
	}

	for id := ID(0); id < idCount; id++ {
		tpl := a.templates[id]
		loaded := 0
		for fi := range tpl.Frames {
			path := filepath.Join(dir, fmt.Sprintf("%s_f%d.png", tpl.Name, fi))
			pix, err := loadPNGFrame(path, tpl.Frames[fi].W, tpl.Frames[fi].H)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return fmt.Errorf("override %s: %w", tpl.Name, err)
			}
			tpl.Frames[fi].Pix = pix
			loaded++
		}
		if loaded > 0 && loaded < len(tpl.Frames) {
			log.Printf("Warning: sprite %s: %d of %d frames overridden, rest use built-in art",
				tpl.Name, loaded, len(tpl.Frames))
		}
	}
	return nil
}

// loadPNGFrame decodes a PNG into raw RGBA pixels. Alpha below half and
// magenta (#FF00FF) both count as transparent.
func loadPNGFrame(path string, wantW, wantH int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		return nil, fmt.Errorf("%s: expected %dx%d, got %dx%d",
			path, wantW, wantH, bounds.Dx(), bounds.Dy())
	}

	pix := make([]byte, wantW*wantH*4)
	for y := 0; y < wantH; y++ {
		for x := 0; x < wantW; x++ {
			r, g, b, alpha := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if alpha < 0x8000 || (r8 == 0xFF && g8 == 0x00 && b8 == 0xFF) {
				continue
			}
			i := (y*wantW + x) * 4
			pix[i] = r8
			pix[i+1] = g8
			pix[i+2] = b8
			pix[i+3] = 0xff
		}
	}
	return pix, nil
}

// ExportDir writes every template frame to dir as <sprite>_f<N>.png,
// creating dir if needed. The files are valid LoadDir overrides.
func ExportDir(a *Assets, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for id := ID(0); id < idCount; id++ {
		tpl := a.templates[id]
		for fi, frame := range tpl.Frames {
			img := image.NewNRGBA(image.Rect(0, 0, frame.W, frame.H))
			for y := 0; y < frame.H; y++ {
				for x := 0; x < frame.W; x++ {
					i := (y*frame.W + x) * 4
					img.SetNRGBA(x, y, color.NRGBA{
						R: frame.Pix[i],
						G: frame.Pix[i+1],
						B: frame.Pix[i+2],
						A: frame.Pix[i+3],
					})
				}
			}

			path := filepath.Join(dir, fmt.Sprintf("%s_f%d.png", tpl.Name, fi))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return fmt.Errorf("encode %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", path, err)
			}
		}
	}
	return nil
}
