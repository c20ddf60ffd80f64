// Image file decoding for the still-frame source
package io

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// ErrFileUnreadable is returned when a path cannot be decoded as an image.
var ErrFileUnreadable = errors.New("file unreadable")

// SupportedExtensions lists the extensions offered in the open dialog.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".webp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes path as a 3-channel BGR frame. The caller owns the
// returned Mat.
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("path", path).Debug("Loading image")

	if !IsSupportedImageFormat(path) {
		return gocv.NewMat(), errors.Wrapf(ErrFileUnreadable, "unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), errors.Wrapf(ErrFileUnreadable, "failed to decode image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// IsSupportedImageFormat checks the file extension only.
func IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}
