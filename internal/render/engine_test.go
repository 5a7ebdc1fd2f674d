package render

import (
	"strings"
	"testing"
)

// testPix builds a pw x ph RGBA buffer filled with one color.
func testPix(pw, ph int, r, g, b byte) []byte {
	pix := make([]byte, pw*ph*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 255
	}
	return pix
}

func setPix(pix []byte, pw, x, y int, r, g, b byte) {
	i := (y*pw + x) * 4
	pix[i] = r
	pix[i+1] = g
	pix[i+2] = b
	pix[i+3] = 255
}

// rowText collects the characters of one composed buffer row.
func rowText(e *Engine, y int) string {
	var sb strings.Builder
	for x := 0; x < e.width; x++ {
		sb.WriteRune(e.current[y][x].Ch)
	}
	return sb.String()
}

func TestRenderMapsPixelPairsToHalfBlocks(t *testing.T) {
	const pw, ph = 2, 4
	pix := testPix(pw, ph, 0, 0, 0)
	setPix(pix, pw, 0, 0, 200, 10, 10)
	setPix(pix, pw, 0, 1, 10, 200, 10)

	e := NewEngine(10, 5)
	e.Render(pix, pw, ph, 10, 5, HUD{})

	// The 2x2-cell playfield centers at column 4, row 0.
	c := e.current[0][4]
	if c.Ch != halfBlock {
		t.Fatalf("cell ch = %q, want half block", c.Ch)
	}
	if c.FgR != 200 || c.FgG != 10 || c.FgB != 10 {
		t.Errorf("upper pixel = (%d, %d, %d), want (200, 10, 10)", c.FgR, c.FgG, c.FgB)
	}
	if c.BgR != 10 || c.BgG != 200 || c.BgB != 10 {
		t.Errorf("lower pixel = (%d, %d, %d), want (10, 200, 10)", c.BgR, c.BgG, c.BgB)
	}
}

func TestRenderDownscalesToFitTheTerminal(t *testing.T) {
	const pw, ph = 224, 256
	pix := testPix(pw, ph, 90, 90, 90)

	e := NewEngine(80, 24)
	e.Render(pix, pw, ph, 80, 24, HUD{})

	blocks := 0
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			if e.current[y][x].Ch == halfBlock {
				blocks++
			}
		}
	}
	// At scale 8 the playfield is 28 columns by 16 rows.
	if want := 28 * 16; blocks != want {
		t.Errorf("half-block cells = %d, want %d", blocks, want)
	}
}

func TestRenderSecondIdenticalFrameEmitsNothing(t *testing.T) {
	pix := testPix(8, 8, 50, 60, 70)
	e := NewEngine(40, 12)
	if first := e.Render(pix, 8, 8, 40, 12, HUD{Score: 3}); first == "" {
		t.Fatal("first frame emitted nothing")
	}
	if second := e.Render(pix, 8, 8, 40, 12, HUD{Score: 3}); second != "" {
		t.Errorf("identical second frame emitted %d bytes, want none", len(second))
	}
}

func TestRenderDrawsHUD(t *testing.T) {
	pix := testPix(8, 8, 0, 0, 0)
	e := NewEngine(40, 12)
	e.Render(pix, 8, 8, 40, 12, HUD{Score: 120, Best: 450, Invaders: 38})
	hudRow := rowText(e, e.height-HUDRows)
	for _, want := range []string{"Score 120", "Best 450", "Invaders 38"} {
		if !strings.Contains(hudRow, want) {
			t.Errorf("HUD row %q missing %q", hudRow, want)
		}
	}
}

func TestRenderStateOverlays(t *testing.T) {
	tests := []struct {
		name  string
		state int
		want  string
	}{
		{"won", 1, "VICTORY"},
		{"lost", 2, "GAME OVER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := testPix(8, 8, 0, 0, 0)
			e := NewEngine(40, 12)
			e.Render(pix, 8, 8, 40, 12, HUD{State: tt.state})
			found := false
			for y := 0; y < e.height; y++ {
				if strings.Contains(rowText(e, y), tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("overlay %q not drawn", tt.want)
			}
		})
	}
}

func TestRenderResizesWithTheTerminal(t *testing.T) {
	pix := testPix(8, 8, 10, 20, 30)
	e := NewEngine(40, 12)
	e.Render(pix, 8, 8, 40, 12, HUD{})
	out := e.Render(pix, 8, 8, 60, 20, HUD{})
	if e.width != 60 || e.height != 20 {
		t.Fatalf("engine size = %dx%d, want 60x20", e.width, e.height)
	}
	if out == "" {
		t.Error("post-resize frame emitted nothing")
	}
}

func TestRenderTooSmallTerminal(t *testing.T) {
	pix := testPix(224, 256, 0, 0, 0)
	e := NewEngine(10, 4)
	e.Render(pix, 224, 256, 10, 4, HUD{})
	if !strings.Contains(rowText(e, 0), "Terminal") {
		t.Error("small-terminal notice not drawn")
	}
}
