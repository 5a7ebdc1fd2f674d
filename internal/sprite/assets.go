package sprite

import (
	"fmt"
	"strings"
)

// ID identifies a sprite template in the asset table.
type ID int

const (
	Squid ID = iota // top formation band
	Crab            // middle bands
	Octopus         // bottom bands
	Cannon
	Shield
	Bullet
	Laser
	idCount
)

// Assets is the immutable sprite template table. Safe to share between
// worlds once loaded.
type Assets struct {
	templates [idCount]*Template
}

// Load parses the built-in art into a fresh asset table.
func Load() (*Assets, error) {
	a := &Assets{}
	for _, src := range artSources {
		tpl, err := parseArt(src)
		if err != nil {
			return nil, fmt.Errorf("sprite %q: %w", src.name, err)
		}
		a.templates[src.id] = tpl
	}
	for id := ID(0); id < idCount; id++ {
		if a.templates[id] == nil {
			return nil, fmt.Errorf("sprite id %d has no art source", id)
		}
	}
	return a, nil
}

// Template returns the frame set for id.
func (a *Assets) Template(id ID) *Template {
	return a.templates[id]
}

// parseArt converts a character-grid source into a Template. Every row of
// a frame must have the same width, every frame the same dimensions, and
// every non-'.' rune must appear in the palette.
func parseArt(src artSource) (*Template, error) {
	if len(src.frames) == 0 {
		return nil, fmt.Errorf("no frames")
	}

	tpl := &Template{Name: src.name}
	for fi, grid := range src.frames {
		rows := splitGrid(grid)
		if len(rows) == 0 {
			return nil, fmt.Errorf("frame %d is empty", fi)
		}

		w := len(rows[0])
		h := len(rows)
		for y, row := range rows {
			if len(row) != w {
				return nil, fmt.Errorf("frame %d row %d is %d wide, want %d", fi, y, len(row), w)
			}
		}
		if fi > 0 && (w != tpl.Frames[0].W || h != tpl.Frames[0].H) {
			return nil, fmt.Errorf("frame %d is %dx%d, frame 0 is %dx%d",
				fi, w, h, tpl.Frames[0].W, tpl.Frames[0].H)
		}

		pix := make([]byte, w*h*4)
		for y, row := range rows {
			for x := 0; x < w; x++ {
				ch := row[x]
				if ch == '.' {
					continue
				}
				c, ok := src.palette[ch]
				if !ok {
					return nil, fmt.Errorf("frame %d row %d: rune %q not in palette", fi, y, ch)
				}
				i := (y*w + x) * 4
				pix[i] = c.r
				pix[i+1] = c.g
				pix[i+2] = c.b
				pix[i+3] = 0xff
			}
		}
		tpl.Frames = append(tpl.Frames, Frame{W: w, H: h, Pix: pix})
	}
	return tpl, nil
}

// splitGrid breaks a frame literal into rows, dropping blank edges.
func splitGrid(grid string) []string {
	lines := strings.Split(grid, "\n")
	var rows []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" && len(rows) == 0 {
			continue
		}
		rows = append(rows, line)
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}
