package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestFrameStoreEmpty(t *testing.T) {
	fs := NewFrameStore()
	defer fs.Close()

	assert.False(t, fs.HasFrame())
	mat, err := fs.Frame()
	defer mat.Close()
	assert.True(t, errors.Is(err, ErrNoImageLoaded))
	assert.True(t, mat.Empty())
}

func TestFrameStoreSetAndReplace(t *testing.T) {
	fs := NewFrameStore()
	defer fs.Close()

	first := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 4, 6, gocv.MatTypeCV8UC3)
	defer first.Close()
	require.NoError(t, fs.SetFrame(first, SourceFile, "/tmp/photo.PNG"))

	meta := fs.Metadata()
	assert.Equal(t, 6, meta.Width)
	assert.Equal(t, 4, meta.Height)
	assert.Equal(t, 3, meta.Channels)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, SourceFile, meta.Source)

	second := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(1, 0, 0, 0), 8, 8, gocv.MatTypeCV8UC1)
	defer second.Close()
	require.NoError(t, fs.SetFrame(second, SourceCamera, ""))

	got, err := fs.Frame()
	require.NoError(t, err)
	defer got.Close()
	assert.Equal(t, 8, got.Cols())
	assert.Equal(t, 1, got.Channels())
	assert.Equal(t, "unknown", fs.Metadata().Format)

	// The store holds its own copy.
	got.SetUCharAt(0, 0, 99)
	again, err := fs.Frame()
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, uint8(1), again.GetUCharAt(0, 0))
}

func TestFrameStoreRejectsEmpty(t *testing.T) {
	fs := NewFrameStore()
	defer fs.Close()

	empty := gocv.NewMat()
	defer empty.Close()
	assert.Error(t, fs.SetFrame(empty, SourceFile, "x.png"))
	assert.False(t, fs.HasFrame())
}

func TestFrameStoreClear(t *testing.T) {
	fs := NewFrameStore()
	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer mat.Close()

	require.NoError(t, fs.SetFrame(mat, SourceFile, "a.jpg"))
	fs.Clear()
	assert.False(t, fs.HasFrame())
	assert.Equal(t, FrameMetadata{}, fs.Metadata())
}
