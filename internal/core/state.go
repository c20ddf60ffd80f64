package core

import "github.com/pkg/errors"

// State is the application shell state.
type State int

const (
	StateIdle State = iota
	StateImageLoaded
	StateCameraRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateImageLoaded:
		return "Image loaded"
	case StateCameraRunning:
		return "Camera running"
	}
	return "Unknown"
}

// ErrNoImageLoaded is returned when processing is requested before any
// frame exists.
var ErrNoImageLoaded = errors.New("no image loaded")
