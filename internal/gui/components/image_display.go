package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImagePaneWidth  = 320
	ImagePaneHeight = 240
)

// ImageDisplay lays out the input panes next to the output pane. The second
// input pane is only visible for two-input filters.
type ImageDisplay struct {
	container     *fyne.Container
	primary       *canvas.Image
	secondary     *canvas.Image
	secondaryPane *fyne.Container

	Output *ProfileView
}

func NewImageDisplay() *ImageDisplay {
	primary := newPaneImage()
	secondary := newPaneImage()
	output := NewProfileView()

	secondaryPane := container.NewBorder(widget.NewRichTextFromMarkdown("**Input 2**"), nil, nil, nil, secondary)
	secondaryPane.Hide()

	inputs := container.NewVBox(
		container.NewBorder(widget.NewRichTextFromMarkdown("**Input 1**"), nil, nil, nil, primary),
		secondaryPane,
	)
	outputPane := container.NewBorder(widget.NewRichTextFromMarkdown("**Output**"), nil, nil, nil, output)

	return &ImageDisplay{
		container:     container.NewHBox(inputs, outputPane),
		primary:       primary,
		secondary:     secondary,
		secondaryPane: secondaryPane,
		Output:        output,
	}
}

func newPaneImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(ImagePaneWidth, ImagePaneHeight))
	return img
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

func (id *ImageDisplay) SetInputs(primary, secondary image.Image, showSecondary bool) {
	id.primary.Image = primary
	id.primary.Refresh()

	id.secondary.Image = secondary
	id.secondary.Refresh()

	if showSecondary {
		id.secondaryPane.Show()
	} else {
		id.secondaryPane.Hide()
	}
}

// SecondaryVisible reports whether the second input pane is shown.
func (id *ImageDisplay) SecondaryVisible() bool {
	return id.secondaryPane.Visible()
}

func (id *ImageDisplay) SetOutput(img image.Image) {
	id.Output.SetImage(img)
}
