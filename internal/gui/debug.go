package gui

import (
	"github.com/sirupsen/logrus"

	"edge-segmentation/internal/core"
)

// DebugGUI logs user interface events at debug level.
type DebugGUI struct {
	logger *logrus.Logger
}

func NewDebugGUI(logger *logrus.Logger) *DebugGUI {
	return &DebugGUI{logger: logger}
}

func (d *DebugGUI) LogMenuAction(menu, item string) {
	d.logger.WithFields(logrus.Fields{
		"menu": menu,
		"item": item,
	}).Debug("Menu action")
}

func (d *DebugGUI) LogButtonClick(name string) {
	d.logger.WithField("button", name).Debug("Button clicked")
}

func (d *DebugGUI) LogSliderChange(name string, oldValue, newValue int) {
	if oldValue == newValue {
		return
	}
	d.logger.WithFields(logrus.Fields{
		"slider": name,
		"from":   oldValue,
		"to":     newValue,
	}).Debug("Slider changed")
}

func (d *DebugGUI) LogStateChange(from, to core.State) {
	if from == to {
		return
	}
	d.logger.WithFields(logrus.Fields{
		"from": from.String(),
		"to":   to.String(),
	}).Info("State changed")
}

func (d *DebugGUI) LogImageDisplay(panel string, width, height int) {
	d.logger.WithFields(logrus.Fields{
		"panel":  panel,
		"width":  width,
		"height": height,
	}).Trace("Panel updated")
}
