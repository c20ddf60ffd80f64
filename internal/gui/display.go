package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// DisplayPanel shows one frame at a fixed size. The rendered image is kept
// in the panel for as long as it is displayed.
type DisplayPanel struct {
	title   string
	size    image.Point
	image   *canvas.Image
	card    *widget.Card
	current image.Image
}

// NewDisplayPanel creates a panel of width x height pixels.
func NewDisplayPanel(title string, width, height int) *DisplayPanel {
	dp := &DisplayPanel{
		title: title,
		size:  image.Pt(width, height),
	}

	dp.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	dp.image.FillMode = canvas.ImageFillContain
	dp.image.ScaleMode = canvas.ImageScaleSmooth
	dp.image.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	dp.card = widget.NewCard(title, "", dp.image)

	return dp
}

// Render resamples mat to the panel size and shows it. 3-channel input is
// treated as BGR. mat is not modified.
func (dp *DisplayPanel) Render(mat gocv.Mat) error {
	if mat.Empty() {
		return errors.Errorf("%s: cannot render empty frame", dp.title)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, dp.size, 0, 0, gocv.InterpolationLinear)

	img, err := resized.ToImage()
	if err != nil {
		return errors.Wrapf(err, "%s: convert frame", dp.title)
	}

	dp.show(img)
	return nil
}

// Clear fills the panel with a flat colour.
func (dp *DisplayPanel) Clear(bg color.Color) {
	img := image.NewRGBA(image.Rectangle{Max: dp.size})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	dp.show(img)
}

func (dp *DisplayPanel) show(img image.Image) {
	dp.current = img
	dp.image.Image = img
	dp.image.Refresh()
}

// Current returns the image on screen, or nil before the first render.
func (dp *DisplayPanel) Current() image.Image {
	return dp.current
}

// Size returns the fixed display size.
func (dp *DisplayPanel) Size() image.Point {
	return dp.size
}

func (dp *DisplayPanel) Object() fyne.CanvasObject {
	return dp.card
}
