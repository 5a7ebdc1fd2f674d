package game

import (
	"pixel-invaders/internal/geom"
	"pixel-invaders/internal/sprite"
)

const (
	bulletSpeed   = 4  // pixels per tick, upward
	laserSpeed    = 3  // pixels per tick, downward
	laserInterval = 96 // ticks between invader shots
)

// Projectile is a live shot: the cannon's bullet or an invader laser.
type Projectile struct {
	Sprite sprite.Ref
	Pos    geom.Point
}

// rect is an axis-aligned pixel box used for collision tests.
type rect struct {
	x, y, w, h int
}

func (p *Projectile) bounds() rect {
	w, h := p.Sprite.Size()
	return rect{x: p.Pos.X, y: p.Pos.Y, w: w, h: h}
}

func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w && o.x < r.x+r.w && r.y < o.y+o.h && o.y < r.y+r.h
}

// swapRemove drops element i without preserving order.
func swapRemove(list []Projectile, i int) []Projectile {
	list[i] = list[len(list)-1]
	return list[:len(list)-1]
}
