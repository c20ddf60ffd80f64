package camera

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Source is one acquisition of a capture device. The device is released
// exactly once, by whichever of Release or a deferred cleanup runs first.
type Source struct {
	logger *logrus.Logger
	index  int

	mu       sync.Mutex
	device   Device
	release  sync.Once
	released bool
}

// Open acquires the device at index.
func Open(open Opener, index int, logger *logrus.Logger) (*Source, error) {
	device, err := open(index)
	if err != nil {
		if !errors.Is(err, ErrDeviceUnavailable) {
			err = errors.Wrap(ErrDeviceUnavailable, err.Error())
		}
		return nil, err
	}

	logger.WithField("device", index).Info("Camera opened")
	return &Source{
		logger: logger,
		index:  index,
		device: device,
	}, nil
}

// ReadNext returns the next frame. The caller owns the returned Mat.
func (s *Source) ReadNext() (gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return gocv.NewMat(), ErrNotOpen
	}

	mat := gocv.NewMat()
	if ok := s.device.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return gocv.NewMat(), ErrNoFrame
	}
	return mat, nil
}

// Release closes the device. Further calls are no-ops.
func (s *Source) Release() error {
	var err error
	s.release.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.released = true
		err = s.device.Close()
		s.device = nil
		s.logger.WithField("device", s.index).Info("Camera released")
	})
	return errors.Wrap(err, "release camera")
}

// Released reports whether the device handle has been given back.
func (s *Source) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// WithSource opens the device, runs fn and always releases it, even when fn
// panics.
func WithSource(open Opener, index int, logger *logrus.Logger, fn func(*Source) error) (err error) {
	src, err := Open(open, index, logger)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := src.Release(); err == nil {
			err = rerr
		}
	}()
	return fn(src)
}
