package game

import (
	"pixel-invaders/internal/geom"
	"pixel-invaders/internal/sprite"
)

const (
	numShields = 4
	shieldLine = 192 // shield top edge; the formation reaching it is defeat
	blastSize  = 5   // square hole punched per projectile hit
)

// Shield is a defensive barrier. It owns a deformable copy of its bitmap,
// so punching one shield never marks the template or its siblings.
type Shield struct {
	Sprite *sprite.Sprite
	Pos    geom.Point
}

func newShields(assets *sprite.Assets) [numShields]Shield {
	var shields [numShields]Shield
	tpl := assets.Template(sprite.Shield)
	for i := range shields {
		shields[i] = Shield{
			Sprite: sprite.NewSprite(tpl),
			Pos:    geom.Pt(i*45+32, shieldLine),
		}
	}
	return shields
}

// hit tests r against the shield's live pixels. On impact a blast hole is
// punched around the first overlapping pixel and hit reports true.
func (s *Shield) hit(r rect) bool {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			lx, ly := x-s.Pos.X, y-s.Pos.Y
			if s.Sprite.OpaqueAt(lx, ly) {
				s.Sprite.Punch(lx, ly, blastSize, blastSize)
				return true
			}
		}
	}
	return false
}
