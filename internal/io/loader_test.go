package io

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeTestImage(t *testing.T, name string, rows, cols int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 80, 120, 0), rows, cols, gocv.MatTypeCV8UC3)
	defer mat.Close()
	require.True(t, gocv.IMWrite(path, mat), "write %s", path)
	return path
}

func TestLoadImageDimensionsMatchSource(t *testing.T) {
	loader := NewImageLoader(quietLogger())

	for _, name := range []string{"frame.png", "frame.bmp", "frame.jpg", "frame.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := writeTestImage(t, name, 37, 53)

			mat, err := loader.LoadImage(path)
			require.NoError(t, err)
			defer mat.Close()

			assert.Equal(t, 53, mat.Cols())
			assert.Equal(t, 37, mat.Rows())
			assert.Equal(t, 3, mat.Channels())
		})
	}
}

func TestLoadImageUnreadable(t *testing.T) {
	loader := NewImageLoader(quietLogger())
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))

	paths := map[string]string{
		"missing":     filepath.Join(dir, "missing.png"),
		"unsupported": filepath.Join(dir, "notes.txt"),
		"corrupt":     corrupt,
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			mat, err := loader.LoadImage(path)
			defer mat.Close()

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFileUnreadable))
			assert.True(t, mat.Empty())
		})
	}
}

func TestIsSupportedImageFormat(t *testing.T) {
	assert.True(t, IsSupportedImageFormat("/a/b/photo.JPG"))
	assert.True(t, IsSupportedImageFormat("scan.tif"))
	assert.False(t, IsSupportedImageFormat("archive.tar.gz"))
	assert.False(t, IsSupportedImageFormat("noext"))
}
