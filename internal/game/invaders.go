package game

import (
	"pixel-invaders/internal/geom"
	"pixel-invaders/internal/sprite"
)

// Formation dimensions and placement. An invader's pixel position is
// formationOrigin + its band offset + (col, row) * cellSpacing.
const (
	FormationRows  = 5
	FormationCols  = 11
	formationCells = FormationRows * FormationCols
)

var (
	formationOrigin = geom.Pt(24, 60)
	cellSpacing     = geom.Pt(16, 16)
)

// March tuning. One sweep is formationCells stepper advances, so each
// live invader moves once per sweep.
const (
	marchStep   = 2 // horizontal pixels per visit
	descendStep = 8 // vertical pixels per visit on a descending sweep
	marchMargin = 8 // closest the formation gets to either screen edge
)

// band is a run of formation rows sharing one template and pixel offset.
type band struct {
	firstRow, lastRow int
	id                sprite.ID
	offset            geom.Point
	score             int
}

// All bands score 10 for now.
var bands = []band{
	{0, 0, sprite.Squid, geom.Pt(3, 4), 10},
	{1, 2, sprite.Crab, geom.Pt(3, 5), 10},
	{3, 4, sprite.Octopus, geom.Pt(3, 4), 10},
}

func bandFor(row int) band {
	for _, b := range bands {
		if row >= b.firstRow && row <= b.lastRow {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Invader is one formation member.
type Invader struct {
	Sprite sprite.Ref
	Pos    geom.Point
	Score  int
}

// cell is one arena slot. Invaders are stored in place; occupancy is the
// tag, so destroying a cell never shifts other cells' indices.
type cell struct {
	occupied bool
	inv      Invader
}

// Bounds is the pixel extent of the live formation. Derived state: always
// recomputed from the occupied cells, never stored.
type Bounds struct {
	Left, Right, Bottom int
}

// Invaders is the formation: a flat arena indexed row*FormationCols+col,
// the traversal stepper, and the march state shared by all members.
type Invaders struct {
	cells   [formationCells]cell
	stepper Stepper
	visited int
	dir     int  // +1 marching right, -1 left
	descend bool // the current sweep also steps down
	alive   int
}

func newInvaders(assets *sprite.Assets) Invaders {
	inv := Invaders{dir: 1, alive: formationCells, stepper: NewStepper()}
	for row := 0; row < FormationRows; row++ {
		b := bandFor(row)
		tpl := assets.Template(b.id)
		for col := 0; col < FormationCols; col++ {
			inv.cells[row*FormationCols+col] = cell{
				occupied: true,
				inv: Invader{
					Sprite: sprite.NewRef(tpl),
					Pos:    formationOrigin.Add(b.offset).Add(geom.Pt(col, row).Mul(cellSpacing)),
					Score:  b.score,
				},
			}
		}
	}
	return inv
}

// at returns the arena slot for (row, col).
func (inv *Invaders) at(row, col int) *cell {
	return &inv.cells[row*FormationCols+col]
}

// Alive returns the number of occupied cells.
func (inv *Invaders) Alive() int {
	return inv.alive
}

// Empty reports whether every cell has been destroyed.
func (inv *Invaders) Empty() bool {
	return inv.alive == 0
}

// destroy empties the cell at (row, col) and returns its score value.
func (inv *Invaders) destroy(row, col int) int {
	c := inv.at(row, col)
	if !c.occupied {
		return 0
	}
	c.occupied = false
	inv.alive--
	return c.inv.Score
}

// Bounds recomputes the live extent. The zero value means no live cells.
func (inv *Invaders) Bounds() Bounds {
	var b Bounds
	first := true
	for i := range inv.cells {
		c := &inv.cells[i]
		if !c.occupied {
			continue
		}
		w, h := c.inv.Sprite.Size()
		if first || c.inv.Pos.X < b.Left {
			b.Left = c.inv.Pos.X
		}
		if first || c.inv.Pos.X+w > b.Right {
			b.Right = c.inv.Pos.X + w
		}
		if first || c.inv.Pos.Y+h > b.Bottom {
			b.Bottom = c.inv.Pos.Y + h
		}
		first = false
	}
	return b
}

// stepOne advances the stepper to the next occupied cell and applies that
// invader's per-tick work: one animation frame and one march step. The
// search is bounded by the cell count and reports false only when the
// formation is empty.
func (inv *Invaders) stepOne() bool {
	if inv.alive == 0 {
		return false
	}
	for tries := 0; tries < formationCells; tries++ {
		if inv.visited > 0 && inv.visited%formationCells == 0 {
			inv.beginSweep()
		}
		col, row := inv.stepper.Advance()
		inv.visited++

		c := inv.at(row, col)
		if !c.occupied {
			continue
		}
		c.inv.Sprite.Animate()
		c.inv.Pos.X += inv.dir * marchStep
		if inv.descend {
			c.inv.Pos.Y += descendStep
		}
		return true
	}
	return false
}

// beginSweep re-evaluates the march direction against the screen margins.
// Runs once every formationCells stepper advances; a reversal arms one
// full sweep of descent.
func (inv *Invaders) beginSweep() {
	inv.descend = false
	if inv.alive == 0 {
		return
	}
	b := inv.Bounds()
	if inv.dir > 0 && b.Right+marchStep > ScreenWidth-marchMargin {
		inv.dir = -1
		inv.descend = true
	} else if inv.dir < 0 && b.Left-marchStep < marchMargin {
		inv.dir = 1
		inv.descend = true
	}
}
