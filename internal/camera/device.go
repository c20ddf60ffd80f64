// Package camera provides the live frame source: device access with scoped
// release and a cooperative, self-rescheduling poll loop.
package camera

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

var (
	// ErrDeviceUnavailable is returned when the capture device cannot be opened.
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	// ErrNoFrame is returned when a read yields nothing. It is transient.
	ErrNoFrame = errors.New("no frame available")
	// ErrNotOpen is returned when reading from a released source.
	ErrNotOpen = errors.New("camera is not open")
)

// Device is an opened capture device.
type Device interface {
	Read(dst *gocv.Mat) bool
	Close() error
}

// Opener opens the capture device with the given index.
type Opener func(index int) (Device, error)

// OpenDevice opens a system camera through OpenCV.
func OpenDevice(index int) (Device, error) {
	capture, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, errors.Wrapf(ErrDeviceUnavailable, "device %d: %v", index, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Wrapf(ErrDeviceUnavailable, "device %d did not open", index)
	}
	return capture, nil
}
