package game

// Direction is the requested horizontal movement for the cannon.
type Direction int

const (
	DirNeutral Direction = iota
	DirLeft
	DirRight
)

// Controls is the input state sampled for one Update call.
type Controls struct {
	Dir  Direction
	Fire bool
}
