package sprite

// Frame is one RGBA bitmap of a sprite's animation sequence.
type Frame struct {
	W, H int
	Pix  []byte // RGBA, row-major, len = W*H*4
}

// OpaqueAt reports whether the pixel at (x, y) has nonzero alpha.
// Out-of-range coordinates are transparent.
func (f *Frame) OpaqueAt(x, y int) bool {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return false
	}
	return f.Pix[(y*f.W+x)*4+3] != 0
}

// Template is the immutable frame set behind one sprite ID. All frames
// share the same dimensions. Templates are shared; entities animate
// through a Ref or deform a private copy via Sprite.
type Template struct {
	Name   string
	Frames []Frame
}

// Size returns the pixel dimensions shared by every frame.
func (t *Template) Size() (int, int) {
	return t.Frames[0].W, t.Frames[0].H
}

// FrameCount returns the number of animation frames.
func (t *Template) FrameCount() int {
	return len(t.Frames)
}

// Ref is a handle to a shared Template plus a per-instance frame cursor.
// Many entities may reference one Template; each Ref owns its cursor.
type Ref struct {
	tpl   *Template
	frame int
}

// NewRef returns a Ref positioned on the template's first frame.
func NewRef(t *Template) Ref {
	return Ref{tpl: t}
}

// Animate advances the cursor one frame, wrapping past the last.
func (r *Ref) Animate() {
	r.frame = (r.frame + 1) % len(r.tpl.Frames)
}

// Frame returns the bitmap under the cursor.
func (r *Ref) Frame() *Frame {
	return &r.tpl.Frames[r.frame]
}

// FrameIndex returns the cursor position.
func (r *Ref) FrameIndex() int {
	return r.frame
}

// Size returns the template's pixel dimensions.
func (r *Ref) Size() (int, int) {
	return r.tpl.Size()
}

// Sprite is a privately owned, mutable bitmap cloned from a Template.
// Deforming it never affects the template or any other clone.
type Sprite struct {
	Frame
}

// NewSprite deep-copies the template's first frame.
func NewSprite(t *Template) *Sprite {
	src := t.Frames[0]
	pix := make([]byte, len(src.Pix))
	copy(pix, src.Pix)
	return &Sprite{Frame: Frame{W: src.W, H: src.H, Pix: pix}}
}

// Punch clears a w x h rectangle centered on (cx, cy) to transparent.
// Coordinates are local to the sprite; the rectangle clips at the edges.
func (s *Sprite) Punch(cx, cy, w, h int) {
	for y := cy - h/2; y < cy-h/2+h; y++ {
		if y < 0 || y >= s.H {
			continue
		}
		for x := cx - w/2; x < cx-w/2+w; x++ {
			if x < 0 || x >= s.W {
				continue
			}
			i := (y*s.W + x) * 4
			s.Pix[i] = 0
			s.Pix[i+1] = 0
			s.Pix[i+2] = 0
			s.Pix[i+3] = 0
		}
	}
}
