// Frame ownership with thread-safe access
package core

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FrameSource tells where the current frame came from.
type FrameSource int

const (
	SourceNone FrameSource = iota
	SourceFile
	SourceCamera
)

// FrameMetadata describes the current frame.
type FrameMetadata struct {
	Width    int
	Height   int
	Channels int
	Type     gocv.MatType
	Format   string
	Path     string
	Source   FrameSource
}

// FrameStore owns the most recently loaded or captured frame. Setting a new
// frame closes the previous one; readers always get a clone.
type FrameStore struct {
	mu       sync.RWMutex
	frame    gocv.Mat
	hasFrame bool
	metadata FrameMetadata
}

// NewFrameStore creates an empty store.
func NewFrameStore() *FrameStore {
	return &FrameStore{
		frame: gocv.NewMat(),
	}
}

// SetFrame stores a clone of mat. The caller keeps ownership of mat.
func (fs *FrameStore) SetFrame(mat gocv.Mat, source FrameSource, path string) error {
	if err := ValidateFrame(mat); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.frame.Close()
	fs.frame = mat.Clone()
	fs.hasFrame = true
	fs.metadata = FrameMetadata{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Type:     mat.Type(),
		Format:   formatFromPath(path),
		Path:     path,
		Source:   source,
	}

	return nil
}

// Frame returns a copy of the current frame, or ErrNoImageLoaded.
func (fs *FrameStore) Frame() (gocv.Mat, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if !fs.hasFrame || fs.frame.Empty() {
		return gocv.NewMat(), ErrNoImageLoaded
	}
	return fs.frame.Clone(), nil
}

// HasFrame returns true if a frame is held.
func (fs *FrameStore) HasFrame() bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.hasFrame
}

// Metadata returns information about the current frame.
func (fs *FrameStore) Metadata() FrameMetadata {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.metadata
}

// Clear discards the current frame.
func (fs *FrameStore) Clear() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.frame.Close()
	fs.frame = gocv.NewMat()
	fs.hasFrame = false
	fs.metadata = FrameMetadata{}
}

// Close releases all resources.
func (fs *FrameStore) Close() {
	fs.Clear()
}

// ValidateFrame checks that mat is a usable 8-bit frame.
func ValidateFrame(mat gocv.Mat) error {
	if mat.Empty() {
		return errors.New("frame is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return errors.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	channels := mat.Channels()
	if channels != 1 && channels != 3 && channels != 4 {
		return errors.Errorf("unsupported channel count: %d", channels)
	}

	const maxDimension = 16384
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return errors.Errorf("frame too large: %dx%d (max: %d)", mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}

func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
