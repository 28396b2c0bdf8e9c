package touch

import (
	"errors"
)

// Mapping scales device pixel coordinates into the target coordinate space,
// one linear factor per axis. Integer division truncates toward zero.
type Mapping struct {
	ScreenW int
	ScreenH int
	TargetW int
	TargetH int
}

func (m Mapping) Map(x, y int) (int, int) {
	return x * m.TargetW / m.ScreenW, y * m.TargetH / m.ScreenH
}

func (m Mapping) Validate() error {
	if m.ScreenW <= 0 || m.ScreenH <= 0 {
		return errors.New("screen dimensions must be positive")
	}
	if m.TargetW <= 0 || m.TargetH <= 0 {
		return errors.New("target dimensions must be positive")
	}
	return nil
}
