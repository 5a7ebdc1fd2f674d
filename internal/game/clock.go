package game

import "time"

// FrameTime is the fixed simulation step: 1/60 of a second at nanosecond
// precision.
const FrameTime = 16_666_667 * time.Nanosecond

// Clock converts variable real elapsed time into fixed simulation steps.
// Time below one frame carries over to the next call, so the total tick
// count never drifts no matter how the wall time is sliced.
type Clock struct {
	residual time.Duration
}

// Advance accumulates dt and returns how many whole frames elapsed.
func (c *Clock) Advance(dt time.Duration) int {
	if dt < 0 {
		return 0
	}
	c.residual += dt
	n := 0
	for c.residual >= FrameTime {
		c.residual -= FrameTime
		n++
	}
	return n
}
