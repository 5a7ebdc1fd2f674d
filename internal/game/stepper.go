package game

// Stepper walks the formation one cell per call: columns ascend within a
// row, and on column overflow the row index decrements, wrapping from 0
// to the bottom row. Visits every cell over FormationRows*FormationCols
// calls, occupied or not.
type Stepper struct {
	row, col int
}

// NewStepper returns a stepper positioned so that the first Advance wraps
// to column 0 of the bottom row.
func NewStepper() Stepper {
	return Stepper{row: 0, col: FormationCols - 1}
}

// Advance moves the cursor to the next cell and returns its (col, row).
func (s *Stepper) Advance() (int, int) {
	s.col++
	if s.col >= FormationCols {
		s.col = 0
		if s.row == 0 {
			s.row = FormationRows - 1
		} else {
			s.row--
		}
	}
	return s.col, s.row
}
