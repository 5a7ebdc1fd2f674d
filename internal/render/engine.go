package render

import (
	"fmt"
	"strings"
)

// HUDRows is the number of terminal rows reserved under the playfield.
const HUDRows = 2

// halfBlock paints two stacked pixels per cell: the foreground color is
// the upper pixel, the background the lower.
const halfBlock = '▀'

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// HUD is the status line data drawn under the playfield.
type HUD struct {
	Score    int
	Best     int
	Invaders int
	State    int // maps to game.State: 0 playing, 1 won, 2 lost
}

// Engine is a per-session double-buffer diff renderer. It scales the
// pixel buffer down by powers of two until it fits the terminal, then
// draws it centered with half-block characters, two pixel rows per cell.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
	lastState     int
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for one frame of the pw x ph RGBA
// pixel buffer plus the HUD.
func (e *Engine) Render(pix []byte, pw, ph, termW, termH int, hud HUD) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	if hud.State != e.lastState {
		e.firstFrame = true
		e.lastState = hud.State
	}

	// Clear next buffer
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = Cell{Ch: ' '}
		}
	}

	availH := e.height - HUDRows
	scale := 1
	for scale < 16 && (pw/scale > e.width || ph/(2*scale) > availH) {
		scale *= 2
	}
	cols := pw / scale
	rows := ph / (2 * scale)

	if availH <= 0 || cols > e.width || rows > availH {
		e.stampText(0, 0, "Terminal too small", Cell{FgR: 255, FgG: 80, FgB: 80, Bold: true})
		return e.flush()
	}

	offX := (e.width - cols) / 2
	offY := (availH - rows) / 2

	for r := 0; r < rows; r++ {
		py := r * 2 * scale
		for c := 0; c < cols; c++ {
			px := c * scale
			ur, ug, ub := avgBlock(pix, pw, px, py, scale)
			lr, lg, lb := avgBlock(pix, pw, px, py+scale, scale)
			e.next[offY+r][offX+c] = Cell{
				Ch:  halfBlock,
				FgR: ur, FgG: ug, FgB: ub,
				BgR: lr, BgG: lg, BgB: lb,
			}
		}
	}

	switch hud.State {
	case 1:
		e.stampCentered(offY+rows/2-1, "VICTORY", Cell{FgR: 120, FgG: 255, FgB: 120, Bold: true})
		e.stampCentered(offY+rows/2+1, "Press R to play again", Cell{FgR: 200, FgG: 200, FgB: 210})
	case 2:
		e.stampCentered(offY+rows/2-1, "GAME OVER", Cell{FgR: 255, FgG: 90, FgB: 90, Bold: true})
		e.stampCentered(offY+rows/2+1, "Press R to play again", Cell{FgR: 200, FgG: 200, FgB: 210})
	}

	e.drawHUD(hud)

	return e.flush()
}

// avgBlock averages the RGB of an s x s pixel block starting at (x0, y0).
func avgBlock(pix []byte, pw, x0, y0, s int) (uint8, uint8, uint8) {
	var r, g, b int
	for y := y0; y < y0+s; y++ {
		for x := x0; x < x0+s; x++ {
			i := (y*pw + x) * 4
			r += int(pix[i])
			g += int(pix[i+1])
			b += int(pix[i+2])
		}
	}
	n := s * s
	return uint8(r / n), uint8(g / n), uint8(b / n)
}

// flush diffs next against current, emits only changed cells, and swaps
// the buffers.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// stampText writes styled text into the next buffer. The style cell
// supplies colors and bold; its Ch is ignored. Returns the next column.
func (e *Engine) stampText(row, col int, text string, style Cell) int {
	for _, r := range text {
		if col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			c := style
			c.Ch = r
			e.next[row][col] = c
		}
		col++
	}
	return col
}

func (e *Engine) stampCentered(row int, text string, style Cell) {
	e.stampText(row, (e.width-len([]rune(text)))/2, text, style)
}

func hudCell(r, g, b uint8, bold bool) Cell {
	return Cell{FgR: r, FgG: g, FgB: b, BgR: 15, BgG: 18, BgB: 30, Bold: bold}
}

func (e *Engine) drawHUD(hud HUD) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}
	for row := 0; row < HUDRows; row++ {
		y := hudY + row
		if y < 0 {
			continue
		}
		for x := 0; x < e.width; x++ {
			e.next[y][x] = Cell{Ch: ' ', BgR: 15, BgG: 18, BgB: 30}
		}
	}

	col := e.stampText(hudY, 1, fmt.Sprintf("Score %d", hud.Score), hudCell(100, 220, 220, true))
	col = e.stampText(hudY, col, "  │  ", hudCell(60, 65, 85, false))
	col = e.stampText(hudY, col, fmt.Sprintf("Best %d", hud.Best), hudCell(180, 180, 195, false))
	col = e.stampText(hudY, col, "  │  ", hudCell(60, 65, 85, false))
	e.stampText(hudY, col, fmt.Sprintf("Invaders %d", hud.Invaders), hudCell(180, 180, 195, false))

	e.stampText(hudY+1, 1, "←→/AD Move  │  Space Fire  │  R Restart  │  Q Quit", hudCell(130, 130, 145, false))
}
