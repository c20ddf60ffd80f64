// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"edge-segmentation/internal/core"
	"edge-segmentation/internal/io"
)

// MenuHandler builds the main menu and forwards actions to the shell.
type MenuHandler struct {
	app *Application
}

func NewMenuHandler(app *Application) *MenuHandler {
	return &MenuHandler{app: app}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	exit := fyne.NewMenuItem("Exit", func() {
		mh.app.debug.LogMenuAction("File", "Exit")
		mh.app.Quit()
	})
	// Stops fyne from appending its own Quit item.
	exit.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Image", mh.openImage),
		fyne.NewMenuItemSeparator(),
		exit,
	)

	cameraMenu := fyne.NewMenu("Camera",
		fyne.NewMenuItem("Start Camera", func() {
			mh.app.debug.LogMenuAction("Camera", "Start Camera")
			_ = mh.app.StartCamera()
		}),
		fyne.NewMenuItem("Stop Camera", func() {
			mh.app.debug.LogMenuAction("Camera", "Stop Camera")
			mh.app.StopCamera()
		}),
	)

	items := make([]*fyne.MenuItem, 0, len(core.Operations))
	for _, op := range core.Operations {
		op := op
		items = append(items, fyne.NewMenuItem(op.Label(), func() {
			mh.app.debug.LogMenuAction("Processing", op.Label())
			mh.app.SelectOperation(op)
		}))
	}
	processingMenu := fyne.NewMenu("Processing", items...)

	return fyne.NewMainMenu(fileMenu, cameraMenu, processingMenu)
}

func (mh *MenuHandler) openImage() {
	mh.app.debug.LogMenuAction("File", "Load Image")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.app.notifier.Notify("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		_ = mh.app.LoadImage(path)
	}, mh.app.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions))
	fileDialog.Show()
}
