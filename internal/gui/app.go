// Application shell: menu actions, frame ownership and the camera poll loop
package gui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"edge-segmentation/internal/algorithms"
	"edge-segmentation/internal/camera"
	"edge-segmentation/internal/config"
	"edge-segmentation/internal/core"
	"edge-segmentation/internal/io"
	"edge-segmentation/internal/metrics"
)

const (
	WindowTitle = "GUI-BASED EDGE DETECTION AND IMAGE SEGMENTATION"

	watchSettle = 200 * time.Millisecond
)

// Application owns all mutable state of the program. Every method is meant
// to run on the UI thread.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	config *config.Config
	debug  *DebugGUI

	// Core components
	store      *core.FrameStore
	loader     *io.ImageLoader
	invoker    *algorithms.Invoker
	evaluator  *metrics.Evaluator
	openCamera camera.Opener
	poller     *camera.Poller
	source     *camera.Source
	watcher    *io.FileWatcher
	notifier   Notifier

	state     core.State
	selection core.Operation
	stats     string

	// GUI components
	original    *DisplayPanel
	result      *DisplayPanel
	controls    *ControlPanel
	toolbar     *Toolbar
	menuHandler *MenuHandler

	closeOnce sync.Once
}

// Option customises an Application.
type Option func(*Application)

// WithCameraOpener replaces the OpenCV camera opener.
func WithCameraOpener(open camera.Opener) Option {
	return func(a *Application) { a.openCamera = open }
}

// WithScheduler replaces the scheduler driving the poll loop.
func WithScheduler(s camera.Scheduler) Option {
	return func(a *Application) {
		a.poller = camera.NewPoller(s, a.config.PollInterval.Duration)
	}
}

// WithNotifier replaces the modal error notices.
func WithNotifier(n Notifier) Option {
	return func(a *Application) { a.notifier = n }
}

func NewApplication(app fyne.App, cfg *config.Config, logger *logrus.Logger, opts ...Option) *Application {
	window := app.NewWindow(WindowTitle)
	window.Resize(fyne.NewSize(float32(2*cfg.PanelWidth+300), float32(cfg.PanelHeight+150)))

	a := &Application{
		app:        app,
		window:     window,
		logger:     logger,
		config:     cfg,
		debug:      NewDebugGUI(logger),
		store:      core.NewFrameStore(),
		loader:     io.NewImageLoader(logger),
		invoker:    algorithms.NewInvoker(logger),
		evaluator:  metrics.NewEvaluator(),
		openCamera: camera.OpenDevice,
		poller:     camera.NewPoller(fyneScheduler{}, cfg.PollInterval.Duration),
		notifier:   NewDialogNotifier(window, logger),
		state:      core.StateIdle,
		selection:  core.OperationNone,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.watcher = io.NewFileWatcher(logger, watchSettle, a.onImageFileChanged)

	a.initializeGUI()
	a.setupLayout()
	a.clearPanels()
	a.updateStatus()

	return a
}

func (a *Application) initializeGUI() {
	a.original = NewDisplayPanel("Original", a.config.PanelWidth, a.config.PanelHeight)
	a.result = NewDisplayPanel("Processed", a.config.PanelWidth, a.config.PanelHeight)
	a.controls = NewControlPanel(a.debug, func() { _ = a.ApplyCurrent() })
	a.menuHandler = NewMenuHandler(a)
	a.toolbar = NewToolbar(
		a.menuHandler.openImage,
		func() { _ = a.StartCamera() },
		a.StopCamera,
	)
}

func (a *Application) setupLayout() {
	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(
		a.toolbar.GetContainer(),
		nil,
		a.original.Object(),
		a.result.Object(),
		container.NewVScroll(a.controls.Object()),
	))
}

// ShowAndRun shows the main window and blocks until it closes.
func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.Close()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

// Close stops the camera and releases every resource. Safe to call twice.
func (a *Application) Close() {
	a.closeOnce.Do(func() {
		a.logger.Info("Cleaning up application resources")
		a.StopCamera()
		a.watcher.Stop()
		a.store.Close()
	})
}

// Quit closes the main window; used by File > Exit.
func (a *Application) Quit() {
	a.Close()
	a.window.Close()
}

// LoadImage decodes path and makes it the current frame. A running camera
// is stopped first. On failure nothing changes.
func (a *Application) LoadImage(path string) error {
	mat, err := a.loader.LoadImage(path)
	if err != nil {
		mat.Close()
		a.notifier.Notify("Error", err)
		return err
	}
	defer mat.Close()

	if a.state == core.StateCameraRunning {
		a.StopCamera()
	}

	if err := a.store.SetFrame(mat, core.SourceFile, path); err != nil {
		err = errors.Wrap(io.ErrFileUnreadable, err.Error())
		a.notifier.Notify("Error", err)
		return err
	}

	a.setState(core.StateImageLoaded)
	a.render(a.original, mat)
	a.result.Clear(a.config.BackgroundColor())
	a.stats = ""

	if a.config.WatchImage {
		if err := a.watcher.Watch(path); err != nil {
			a.logger.WithError(err).Warn("Cannot watch image file")
		}
	}

	a.updateStatus()
	return nil
}

// StartCamera opens the configured device and begins polling.
func (a *Application) StartCamera() error {
	if a.poller.Active() {
		return nil
	}

	src, err := camera.Open(a.openCamera, a.config.CameraDevice, a.logger)
	if err != nil {
		a.notifier.Notify("Error", errors.Wrap(err, "failed to open the video camera"))
		return err
	}

	a.watcher.Stop()
	a.source = src
	a.setState(core.StateCameraRunning)
	a.poller.Start(a.pollTick)
	a.updateStatus()
	return nil
}

// StopCamera releases the device, discards the frame and blanks both panels.
func (a *Application) StopCamera() {
	if a.source == nil && !a.poller.Active() {
		return
	}

	a.poller.Stop()
	if a.source != nil {
		if err := a.source.Release(); err != nil {
			a.logger.WithError(err).Warn("Camera release reported an error")
		}
		a.source = nil
	}

	a.store.Clear()
	a.setState(core.StateIdle)
	a.clearPanels()
	a.updateStatus()
}

// SelectOperation switches the active operation and rebuilds its controls.
func (a *Application) SelectOperation(op core.Operation) {
	a.selection = op
	a.controls.Show(op)
	a.updateStatus()

	if !a.store.HasFrame() {
		a.notifier.Notify("Error", errors.Wrap(core.ErrNoImageLoaded, "select an image or start the camera first"))
		return
	}

	// Operations with parameters wait for Apply; the camera loop picks up
	// the selection on its next tick.
	if a.state == core.StateImageLoaded && !op.HasParameters() {
		_ = a.ApplyCurrent()
	}
}

// ApplyCurrent processes the current frame with the selection and the
// values of the controls.
func (a *Application) ApplyCurrent() error {
	frame, err := a.store.Frame()
	if err != nil {
		frame.Close()
		a.notifier.Notify("Error", err)
		return err
	}
	defer frame.Close()

	processed, err := a.invoker.Apply(frame, a.selection, a.controls.Params())
	if err != nil {
		processed.Close()
		a.notifier.Notify("Processing Error", err)
		return err
	}
	defer processed.Close()

	a.showResult(frame, processed)
	return nil
}

// pollTick reads one frame, shows it raw and processed. A failed read is
// skipped; the poller reschedules regardless.
func (a *Application) pollTick() {
	if a.source == nil {
		return
	}

	frame, err := a.source.ReadNext()
	if err != nil {
		frame.Close()
		a.logger.WithError(err).Debug("Skipping camera tick")
		return
	}
	defer frame.Close()

	if err := a.store.SetFrame(frame, core.SourceCamera, ""); err != nil {
		a.logger.WithError(err).Debug("Discarding camera frame")
		return
	}

	a.render(a.original, frame)

	processed, err := a.invoker.Apply(frame, a.selection, a.controls.Params())
	if err != nil {
		processed.Close()
		return
	}
	defer processed.Close()
	a.showResult(frame, processed)
}

func (a *Application) onImageFileChanged(path string) {
	fyne.Do(func() {
		if a.state != core.StateImageLoaded || a.store.Metadata().Path == "" {
			return
		}
		a.reloadImage(path)
	})
}

func (a *Application) reloadImage(path string) {
	mat, err := a.loader.LoadImage(path)
	if err != nil {
		mat.Close()
		a.logger.WithError(err).Warn("Reload of changed image failed")
		return
	}
	defer mat.Close()

	if err := a.store.SetFrame(mat, core.SourceFile, path); err != nil {
		return
	}
	a.render(a.original, mat)
	if a.selection != core.OperationNone {
		_ = a.ApplyCurrent()
	}
	a.updateStatus()
}

func (a *Application) render(panel *DisplayPanel, mat gocv.Mat) {
	if err := panel.Render(mat); err != nil {
		a.logger.WithError(err).Error("Failed to display frame")
		return
	}
	a.debug.LogImageDisplay(panel.title, mat.Cols(), mat.Rows())
}

func (a *Application) showResult(frame, processed gocv.Mat) {
	a.render(a.result, processed)
	a.stats = a.evaluator.Summary(frame, processed)
	a.updateStatus()
}

func (a *Application) clearPanels() {
	a.stats = ""
	bg := a.config.BackgroundColor()
	a.original.Clear(bg)
	a.result.Clear(bg)
}

func (a *Application) setState(s core.State) {
	a.debug.LogStateChange(a.state, s)
	a.state = s
	a.toolbar.SetState(s)
}

func (a *Application) updateStatus() {
	text := fmt.Sprintf("%s | Operation: %s", a.state, a.selection.Label())
	if a.store.HasFrame() {
		meta := a.store.Metadata()
		text += fmt.Sprintf(" | %dx%d, %d channels", meta.Width, meta.Height, meta.Channels)
	}
	if a.stats != "" {
		text += " | " + a.stats
	}
	a.toolbar.SetStatus(text)
}

// State returns the shell state.
func (a *Application) State() core.State {
	return a.state
}

// Selection returns the active operation.
func (a *Application) Selection() core.Operation {
	return a.selection
}

// CameraActive returns the camera activity flag.
func (a *Application) CameraActive() bool {
	return a.poller.Active()
}

// Controls exposes the parameter panel.
func (a *Application) Controls() *ControlPanel {
	return a.controls
}

// Panels returns the original and processed display panels.
func (a *Application) Panels() (original, result *DisplayPanel) {
	return a.original, a.result
}

func (a *Application) Window() fyne.Window {
	return a.window
}
