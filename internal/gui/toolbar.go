// internal/gui/toolbar.go
// Top toolbar: file and camera shortcuts plus the status line
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"edge-segmentation/internal/core"
)

type Toolbar struct {
	container *fyne.Container

	openBtn  *widget.Button
	startBtn *widget.Button
	stopBtn  *widget.Button
	status   *widget.Label
}

func NewToolbar(onOpen, onStart, onStop func()) *Toolbar {
	tb := &Toolbar{}

	tb.openBtn = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), onOpen)
	tb.openBtn.Importance = widget.HighImportance

	tb.startBtn = widget.NewButtonWithIcon("Start Camera", theme.MediaPlayIcon(), onStart)
	tb.stopBtn = widget.NewButtonWithIcon("Stop Camera", theme.MediaStopIcon(), onStop)

	tb.status = widget.NewLabel("")
	tb.status.Truncation = fyne.TextTruncateEllipsis

	leftSection := container.NewHBox(
		tb.openBtn,
		widget.NewSeparator(),
		tb.startBtn,
		tb.stopBtn,
	)

	tb.container = container.NewBorder(nil, nil, leftSection, nil, tb.status)
	tb.SetState(core.StateIdle)
	return tb
}

// SetState enables the buttons that make sense in state s.
func (tb *Toolbar) SetState(s core.State) {
	if s == core.StateCameraRunning {
		tb.startBtn.Disable()
		tb.stopBtn.Enable()
		return
	}
	tb.startBtn.Enable()
	tb.stopBtn.Disable()
}

func (tb *Toolbar) SetStatus(text string) {
	tb.status.SetText(text)
}

func (tb *Toolbar) Status() string {
	return tb.status.Text
}

func (tb *Toolbar) GetContainer() *fyne.Container {
	return tb.container
}
