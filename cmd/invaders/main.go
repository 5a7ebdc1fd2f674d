package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pixel-invaders/internal/game"
	"pixel-invaders/internal/sprite"
)

// App drives one world through the ebiten game loop.
type App struct {
	assets *sprite.Assets
	world  *game.World
	last   time.Time
	score  int
	state  game.State
}

func newApp(assets *sprite.Assets) *App {
	return &App{
		assets: assets,
		world:  game.NewWorld(assets),
		last:   time.Now(),
	}
}

func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.world.State() != game.StatePlaying {
		a.world = game.NewWorld(a.assets)
		a.last = time.Now()
	}

	var controls game.Controls
	switch {
	case pressed(ebiten.KeyArrowLeft, ebiten.KeyA):
		controls.Dir = game.DirLeft
	case pressed(ebiten.KeyArrowRight, ebiten.KeyD):
		controls.Dir = game.DirRight
	}
	controls.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)

	now := time.Now()
	a.world.Update(now.Sub(a.last), controls)
	a.last = now

	if s, st := a.world.Score(), a.world.State(); s != a.score || st != a.state {
		a.score = s
		a.state = st
		title := fmt.Sprintf("Pixel Invaders | Score %d", s)
		switch st {
		case game.StateWon:
			title += " | VICTORY (R restarts)"
		case game.StateLost:
			title += " | GAME OVER (R restarts)"
		}
		ebiten.SetWindowTitle(title)
	}
	return nil
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.WritePixels(a.world.Draw())
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return game.ScreenWidth, game.ScreenHeight
}

func main() {
	spritesDir := flag.String("sprites", "", "directory of PNG sprite overrides")
	scale := flag.Int("scale", 3, "window scale factor")
	flag.Parse()

	var (
		assets *sprite.Assets
		err    error
	)
	if *spritesDir != "" {
		assets, err = sprite.LoadDir(*spritesDir)
	} else {
		assets, err = sprite.Load()
	}
	if err != nil {
		log.Fatalf("load sprites: %v", err)
	}

	ebiten.SetWindowSize(game.ScreenWidth*(*scale), game.ScreenHeight*(*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Pixel Invaders")
	if err := ebiten.RunGame(newApp(assets)); err != nil {
		log.Fatalf("run: %v", err)
	}
}
