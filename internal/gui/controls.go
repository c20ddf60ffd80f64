package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"edge-segmentation/internal/algorithms"
	"edge-segmentation/internal/core"
)

// ControlPanel holds the parameter controls of the selected operation. It
// is torn down and rebuilt on every selection, starting from fresh defaults.
type ControlPanel struct {
	debug   *DebugGUI
	onApply func()

	box         *fyne.Container
	params      core.Params
	sliders     map[string]*widget.Slider
	applyButton *widget.Button
}

func NewControlPanel(debug *DebugGUI, onApply func()) *ControlPanel {
	cp := &ControlPanel{
		debug:   debug,
		onApply: onApply,
		box:     container.NewVBox(),
		sliders: make(map[string]*widget.Slider),
	}
	cp.Show(core.OperationNone)
	return cp
}

// Show discards the current controls and builds those of op.
func (cp *ControlPanel) Show(op core.Operation) {
	cp.box.RemoveAll()
	cp.params = core.DefaultParams(op)
	cp.sliders = make(map[string]*widget.Slider)
	cp.applyButton = nil

	infos := algorithms.ParameterInfoFor(op)
	if len(infos) == 0 {
		cp.box.Add(widget.NewLabel(placeholderText(op)))
		cp.box.Refresh()
		return
	}

	for _, info := range infos {
		cp.addSlider(info)
	}

	cp.applyButton = widget.NewButton("Apply", func() {
		cp.debug.LogButtonClick("Apply")
		if cp.onApply != nil {
			cp.onApply()
		}
	})
	cp.applyButton.Importance = widget.HighImportance
	cp.box.Add(cp.applyButton)
	cp.box.Refresh()
}

func (cp *ControlPanel) addSlider(info algorithms.ParameterInfo) {
	value := binding.NewFloat()
	_ = value.Set(float64(info.Default))

	slider := widget.NewSlider(float64(info.Min), float64(info.Max))
	slider.Step = 1
	slider.Value = float64(info.Default)
	slider.OnChanged = func(v float64) {
		cp.update(info.Name, int(v))
		_ = value.Set(v)
	}

	valueLabel := widget.NewLabelWithData(binding.FloatToStringWithFormat(value, "%.0f"))

	cp.sliders[info.Name] = slider
	cp.box.Add(widget.NewLabel(info.Label))
	cp.box.Add(container.NewBorder(nil, nil, nil, valueLabel, slider))
}

func (cp *ControlPanel) update(name string, v int) {
	old, err := cp.params.Get(name)
	if err != nil {
		return
	}
	if err := cp.params.Set(name, v); err == nil {
		cp.debug.LogSliderChange(name, old, v)
	}
}

// SetValue moves the named slider as if the user dragged it.
func (cp *ControlPanel) SetValue(name string, v int) error {
	slider, ok := cp.sliders[name]
	if !ok {
		return errors.Errorf("no control %q for %v", name, cp.params.Operation)
	}
	slider.SetValue(float64(v))
	cp.update(name, int(slider.Value))
	return nil
}

// Params returns a copy of the current control values.
func (cp *ControlPanel) Params() core.Params {
	return cp.params
}

// Controls returns how many slider controls are on screen.
func (cp *ControlPanel) Controls() int {
	return len(cp.sliders)
}

// ApplyButton is nil for operations without parameters.
func (cp *ControlPanel) ApplyButton() *widget.Button {
	return cp.applyButton
}

func (cp *ControlPanel) Object() fyne.CanvasObject {
	return cp.box
}

func placeholderText(op core.Operation) string {
	if op == core.OperationNone {
		return "Choose an operation from the Processing menu"
	}
	return op.Label() + " has no parameters"
}
