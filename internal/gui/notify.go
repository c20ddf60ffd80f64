package gui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
)

// Notifier surfaces user-visible errors.
type Notifier interface {
	Notify(title string, err error)
}

type dialogNotifier struct {
	window fyne.Window
	logger *logrus.Logger
}

// NewDialogNotifier shows notices as modal error dialogs.
func NewDialogNotifier(window fyne.Window, logger *logrus.Logger) Notifier {
	return &dialogNotifier{window: window, logger: logger}
}

func (n *dialogNotifier) Notify(title string, err error) {
	n.logger.WithError(err).Error(title)
	dialog.ShowError(err, n.window)
}

// fyneScheduler runs callbacks on the fyne UI thread.
type fyneScheduler struct{}

func (fyneScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, func() {
		fyne.Do(f)
	})
}
