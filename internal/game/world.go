package game

import (
	"fmt"
	"time"

	"pixel-invaders/internal/geom"
	"pixel-invaders/internal/sprite"
)

// Screen dimensions in pixels. The buffer Draw returns is always
// ScreenWidth*ScreenHeight*4 bytes of row-major RGBA.
const (
	ScreenWidth  = 224
	ScreenHeight = 256
)

// State is the phase of a run. Terminal states freeze entities; the tick
// counter keeps running.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	}
	return "unknown"
}

// World owns every entity, the score, the pixel buffer, and the
// simulation clock. It is not safe for concurrent use; each session
// drives its own world from a single goroutine.
type World struct {
	invaders Invaders
	player   Player
	shields  [numShields]Shield
	bullets  []Projectile
	lasers   []Projectile

	assets *sprite.Assets
	screen []byte
	clock  Clock

	score int
	ticks uint64
	state State
}

// New loads the built-in sprite atlas and builds a fresh world.
func New() (*World, error) {
	assets, err := sprite.Load()
	if err != nil {
		return nil, fmt.Errorf("load sprites: %w", err)
	}
	return NewWorld(assets), nil
}

// NewWorld builds a fresh world over an already-loaded asset table.
func NewWorld(assets *sprite.Assets) *World {
	return &World{
		invaders: newInvaders(assets),
		player:   newPlayer(assets),
		shields:  newShields(assets),
		assets:   assets,
		screen:   make([]byte, ScreenWidth*ScreenHeight*4),
	}
}

// Update advances the simulation by however many fixed ticks dt covers.
// Leftover time carries to the next call, so irregular host timing never
// drifts the simulation.
func (w *World) Update(dt time.Duration, input Controls) {
	for n := w.clock.Advance(dt); n > 0; n-- {
		w.step(input)
	}
}

// Score returns the accumulated score.
func (w *World) Score() int { return w.score }

// State returns the current phase.
func (w *World) State() State { return w.state }

// Ticks returns the number of simulation steps since construction.
func (w *World) Ticks() uint64 { return w.ticks }

// InvadersLeft returns the number of live formation members.
func (w *World) InvadersLeft() int { return w.invaders.Alive() }

// step runs one fixed simulation tick.
func (w *World) step(input Controls) {
	w.ticks++
	if w.state != StatePlaying {
		return
	}

	w.player.steer(input.Dir)
	if input.Fire {
		w.fire()
	}

	if !w.invaders.stepOne() {
		w.state = StateWon
		return
	}

	w.moveProjectiles()
	w.invaderFire()
	w.collide()

	if w.invaders.Empty() {
		w.state = StateWon
	} else if w.invaders.Bounds().Bottom >= shieldLine {
		w.state = StateLost
	}
}

// fire spawns the cannon's bullet. Only one may be live at a time.
func (w *World) fire() {
	if len(w.bullets) > 0 {
		return
	}
	tpl := w.assets.Template(sprite.Bullet)
	bw, bh := tpl.Size()
	pw, _ := w.player.Sprite.Size()
	w.bullets = append(w.bullets, Projectile{
		Sprite: sprite.NewRef(tpl),
		Pos:    geom.Pt(w.player.Pos.X+pw/2-bw/2, w.player.Pos.Y-bh),
	})
}

// invaderFire spawns a laser from the bottom-most live invader in the
// column nearest the cannon, every laserInterval ticks.
func (w *World) invaderFire() {
	if w.ticks%laserInterval != 0 {
		return
	}

	pw, _ := w.player.Sprite.Size()
	target := w.player.Pos.X + pw/2

	shooter := -1
	bestDist := -1
	for col := 0; col < FormationCols; col++ {
		for row := FormationRows - 1; row >= 0; row-- {
			c := w.invaders.at(row, col)
			if !c.occupied {
				continue
			}
			iw, _ := c.inv.Sprite.Size()
			d := c.inv.Pos.X + iw/2 - target
			if d < 0 {
				d = -d
			}
			if bestDist < 0 || d < bestDist {
				bestDist = d
				shooter = row*FormationCols + col
			}
			break // bottom-most in this column
		}
	}
	if shooter < 0 {
		return
	}

	inv := &w.invaders.cells[shooter].inv
	tpl := w.assets.Template(sprite.Laser)
	lw, _ := tpl.Size()
	iw, ih := inv.Sprite.Size()
	w.lasers = append(w.lasers, Projectile{
		Sprite: sprite.NewRef(tpl),
		Pos:    geom.Pt(inv.Pos.X+iw/2-lw/2, inv.Pos.Y+ih),
	})
}

// moveProjectiles advances shots and despawns any that leave the screen.
func (w *World) moveProjectiles() {
	for i := len(w.bullets) - 1; i >= 0; i-- {
		w.bullets[i].Pos.Y -= bulletSpeed
		_, h := w.bullets[i].Sprite.Size()
		if w.bullets[i].Pos.Y+h <= 0 {
			w.bullets = swapRemove(w.bullets, i)
		}
	}
	for i := len(w.lasers) - 1; i >= 0; i-- {
		w.lasers[i].Pos.Y += laserSpeed
		if w.lasers[i].Pos.Y >= ScreenHeight {
			w.lasers = swapRemove(w.lasers, i)
		}
	}
}

// collide resolves this tick's projectile impacts.
func (w *World) collide() {
bullets:
	for i := len(w.bullets) - 1; i >= 0; i-- {
		br := w.bullets[i].bounds()

		for row := 0; row < FormationRows; row++ {
			for col := 0; col < FormationCols; col++ {
				c := w.invaders.at(row, col)
				if !c.occupied {
					continue
				}
				iw, ih := c.inv.Sprite.Size()
				if br.overlaps(rect{c.inv.Pos.X, c.inv.Pos.Y, iw, ih}) {
					w.score += w.invaders.destroy(row, col)
					w.bullets = swapRemove(w.bullets, i)
					continue bullets
				}
			}
		}

		for si := range w.shields {
			if w.shields[si].hit(br) {
				w.bullets = swapRemove(w.bullets, i)
				continue bullets
			}
		}
	}

	pw, ph := w.player.Sprite.Size()
	playerRect := rect{w.player.Pos.X, w.player.Pos.Y, pw, ph}
lasers:
	for i := len(w.lasers) - 1; i >= 0; i-- {
		lr := w.lasers[i].bounds()

		for si := range w.shields {
			if w.shields[si].hit(lr) {
				w.lasers = swapRemove(w.lasers, i)
				continue lasers
			}
		}

		if lr.overlaps(playerRect) {
			w.lasers = swapRemove(w.lasers, i)
			w.state = StateLost
		}
	}
}

// Draw composites the current frame and returns the RGBA buffer. The
// slice is reused; it is valid until the next call into the world.
func (w *World) Draw() []byte {
	w.clear()

	for row := 0; row < FormationRows; row++ {
		for col := 0; col < FormationCols; col++ {
			c := w.invaders.at(row, col)
			if !c.occupied {
				continue
			}
			sprite.Blit(w.screen, ScreenWidth, c.inv.Pos, c.inv.Sprite.Frame())
		}
	}
	for i := range w.shields {
		sprite.Blit(w.screen, ScreenWidth, w.shields[i].Pos, &w.shields[i].Sprite.Frame)
	}
	sprite.Blit(w.screen, ScreenWidth, w.player.Pos, w.player.Sprite.Frame())
	for i := range w.bullets {
		sprite.Blit(w.screen, ScreenWidth, w.bullets[i].Pos, w.bullets[i].Sprite.Frame())
	}
	for i := range w.lasers {
		sprite.Blit(w.screen, ScreenWidth, w.lasers[i].Pos, w.lasers[i].Sprite.Frame())
	}

	return w.screen
}

// clear fills the buffer with opaque black.
func (w *World) clear() {
	for i := range w.screen {
		if i%4 == 3 {
			w.screen[i] = 0xff
		} else {
			w.screen[i] = 0
		}
	}
}
