package components

import (
	"image-analyser/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// InputSlot names the input pane an image is loaded into.
type InputSlot int

const (
	PrimarySlot InputSlot = iota
	SecondarySlot
)

type Toolbar struct {
	container     *fyne.Container
	filterSelect  *widget.Select
	loadPrimary   *widget.Button
	loadSecondary *widget.Button
	saveButton    *widget.Button
	defaultsBtn   *widget.Button
	profileCheck  *widget.Check

	filterChangeHandler  func(models.FilterVariant)
	imageLoadHandler     func(InputSlot)
	imageSaveHandler     func()
	defaultsHandler      func()
	profileToggleHandler func(bool)
}

func NewToolbar(initial models.FilterVariant, showProfile bool) *Toolbar {
	tb := &Toolbar{}

	names := make([]string, 0, len(models.AllFilterVariants()))
	for _, v := range models.AllFilterVariants() {
		names = append(names, v.String())
	}
	tb.filterSelect = widget.NewSelect(names, nil)
	tb.filterSelect.SetSelected(initial.String())
	tb.filterSelect.OnChanged = tb.onFilterSelected

	tb.loadPrimary = widget.NewButton("Load Input 1", func() { tb.onLoad(PrimarySlot) })
	tb.loadSecondary = widget.NewButton("Load Input 2", func() { tb.onLoad(SecondarySlot) })
	tb.loadSecondary.Disable()
	tb.saveButton = widget.NewButton("Save Output", tb.onSave)
	tb.defaultsBtn = widget.NewButton("Default Images", tb.onDefaults)

	tb.profileCheck = widget.NewCheck("Line profile", nil)
	tb.profileCheck.SetChecked(showProfile)
	tb.profileCheck.OnChanged = tb.onProfileToggled

	tb.container = container.NewHBox(
		tb.loadPrimary,
		tb.loadSecondary,
		tb.defaultsBtn,
		tb.saveButton,
		widget.NewSeparator(),
		widget.NewLabel("Filter"),
		tb.filterSelect,
		widget.NewSeparator(),
		tb.profileCheck,
	)
	return tb
}

func (tb *Toolbar) GetContainer() *fyne.Container {
	return tb.container
}

func (tb *Toolbar) SetFilterChangeHandler(handler func(models.FilterVariant)) {
	tb.filterChangeHandler = handler
}

func (tb *Toolbar) SetImageLoadHandler(handler func(InputSlot)) {
	tb.imageLoadHandler = handler
}

func (tb *Toolbar) SetImageSaveHandler(handler func()) {
	tb.imageSaveHandler = handler
}

func (tb *Toolbar) SetDefaultInputsHandler(handler func()) {
	tb.defaultsHandler = handler
}

func (tb *Toolbar) SetProfileToggleHandler(handler func(bool)) {
	tb.profileToggleHandler = handler
}

// SelectFilter changes the selection as if the user picked it.
func (tb *Toolbar) SelectFilter(v models.FilterVariant) {
	tb.filterSelect.SetSelected(v.String())
}

func (tb *Toolbar) SetSecondaryEnabled(enabled bool) {
	if enabled {
		tb.loadSecondary.Enable()
	} else {
		tb.loadSecondary.Disable()
	}
}

func (tb *Toolbar) onFilterSelected(name string) {
	v, err := models.ParseFilterVariant(name)
	if err != nil || tb.filterChangeHandler == nil {
		return
	}
	tb.filterChangeHandler(v)
}

func (tb *Toolbar) onLoad(slot InputSlot) {
	if tb.imageLoadHandler != nil {
		tb.imageLoadHandler(slot)
	}
}

func (tb *Toolbar) onSave() {
	if tb.imageSaveHandler != nil {
		tb.imageSaveHandler()
	}
}

func (tb *Toolbar) onDefaults() {
	if tb.defaultsHandler != nil {
		tb.defaultsHandler()
	}
}

func (tb *Toolbar) onProfileToggled(on bool) {
	if tb.profileToggleHandler != nil {
		tb.profileToggleHandler(on)
	}
}
