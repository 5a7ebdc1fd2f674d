package sprite

import "testing"

func mustLoad(t *testing.T) *Assets {
	t.Helper()
	a, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return a
}

func TestLoadBuiltinAtlas(t *testing.T) {
	a := mustLoad(t)

	tests := []struct {
		id     ID
		name   string
		w, h   int
		frames int
	}{
		{Squid, "squid", 10, 8, 2},
		{Crab, "crab", 11, 8, 2},
		{Octopus, "octopus", 12, 8, 2},
		{Cannon, "cannon", 13, 8, 1},
		{Shield, "shield", 22, 16, 1},
		{Bullet, "bullet", 2, 6, 1},
		{Laser, "laser", 3, 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := a.Template(tt.id)
			if tpl.Name != tt.name {
				t.Errorf("name = %q, want %q", tpl.Name, tt.name)
			}
			w, h := tpl.Size()
			if w != tt.w || h != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
			if got := tpl.FrameCount(); got != tt.frames {
				t.Errorf("frame count = %d, want %d", got, tt.frames)
			}
			for fi, f := range tpl.Frames {
				if len(f.Pix) != f.W*f.H*4 {
					t.Errorf("frame %d: len(Pix) = %d, want %d", fi, len(f.Pix), f.W*f.H*4)
				}
			}
		})
	}
}

func TestRefAnimateWraps(t *testing.T) {
	a := mustLoad(t)

	for id := ID(0); id < idCount; id++ {
		tpl := a.Template(id)
		t.Run(tpl.Name, func(t *testing.T) {
			ref := NewRef(tpl)
			start := ref.FrameIndex()
			for i := 0; i < tpl.FrameCount(); i++ {
				ref.Animate()
			}
			if got := ref.FrameIndex(); got != start {
				t.Errorf("after %d advances frame = %d, want %d", tpl.FrameCount(), got, start)
			}
		})
	}
}

func TestRefCursorsAreIndependent(t *testing.T) {
	a := mustLoad(t)
	tpl := a.Template(Crab)

	r1 := NewRef(tpl)
	r2 := NewRef(tpl)
	r1.Animate()

	if r1.FrameIndex() != 1 {
		t.Errorf("r1 frame = %d, want 1", r1.FrameIndex())
	}
	if r2.FrameIndex() != 0 {
		t.Errorf("r2 frame = %d, want 0", r2.FrameIndex())
	}
}

func TestParseArtErrors(t *testing.T) {
	white := map[byte]rgb{'X': {255, 255, 255}}

	tests := []struct {
		name string
		src  artSource
	}{
		{"no frames", artSource{name: "bad", palette: white}},
		{"ragged rows", artSource{name: "bad", palette: white, frames: []string{"\nXX\nXXX"}}},
		{"unknown rune", artSource{name: "bad", palette: white, frames: []string{"\nXX\nX?"}}},
		{"mismatched frames", artSource{name: "bad", palette: white, frames: []string{"\nXX\nXX", "\nXXX\nXXX"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseArt(tt.src); err == nil {
				t.Errorf("parseArt accepted invalid source")
			}
		})
	}
}

func TestSpritePunchIsIsolated(t *testing.T) {
	a := mustLoad(t)
	tpl := a.Template(Shield)

	s1 := NewSprite(tpl)
	s2 := NewSprite(tpl)
	if !s1.OpaqueAt(11, 8) {
		t.Fatalf("expected shield center to start opaque")
	}

	s1.Punch(11, 8, 6, 6)

	if s1.OpaqueAt(11, 8) {
		t.Errorf("punched pixel still opaque")
	}
	if !s2.OpaqueAt(11, 8) {
		t.Errorf("sibling sprite lost pixels")
	}
	if !tpl.Frames[0].OpaqueAt(11, 8) {
		t.Errorf("template lost pixels")
	}
}

func TestSpritePunchClipsAtEdges(t *testing.T) {
	a := mustLoad(t)
	s := NewSprite(a.Template(Shield))

	// Blast rectangles hanging past the left and right edges must clip.
	s.Punch(0, 8, 8, 8)
	s.Punch(s.W-1, 8, 8, 8)

	if s.OpaqueAt(0, 8) {
		t.Errorf("left edge pixel still opaque after punch")
	}
	if s.OpaqueAt(s.W-1, 8) {
		t.Errorf("right edge pixel still opaque after punch")
	}
}
