package game

import (
	"pixel-invaders/internal/geom"
	"pixel-invaders/internal/sprite"
)

const (
	playerSpeed = 2 // pixels per tick
	playerMinX  = 8 // keep-out margin at either screen edge
)

var playerStart = geom.Pt(80, 216)

// Player is the cannon at the bottom of the screen.
type Player struct {
	Sprite sprite.Ref
	Pos    geom.Point
}

func newPlayer(assets *sprite.Assets) Player {
	return Player{
		Sprite: sprite.NewRef(assets.Template(sprite.Cannon)),
		Pos:    playerStart,
	}
}

// steer moves the cannon one tick's worth in dir, clamped to the screen.
func (p *Player) steer(dir Direction) {
	switch dir {
	case DirLeft:
		p.Pos.X -= playerSpeed
	case DirRight:
		p.Pos.X += playerSpeed
	default:
		return
	}
	w, _ := p.Sprite.Size()
	if p.Pos.X < playerMinX {
		p.Pos.X = playerMinX
	}
	if p.Pos.X > ScreenWidth-playerMinX-w {
		p.Pos.X = ScreenWidth - playerMinX - w
	}
}
