package components

import (
	"image"
	"image/color"

	"image-analyser/internal/profile"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const profileStrokeWidth = 1.5

var cursorColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}

// ProfileView shows an image with line-profile strokes drawn over it and
// reports where the pointer is, as a fraction of the view height.
type ProfileView struct {
	widget.BaseWidget

	image   *canvas.Image
	strokes *fyne.Container
	cursor  *canvas.Line

	relativeY float64

	OnCursor func(relativeHeight float64)
	OnResize func(width, height float64)
}

var (
	_ desktop.Hoverable = (*ProfileView)(nil)
	_ fyne.Tappable     = (*ProfileView)(nil)
)

func NewProfileView() *ProfileView {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScalePixels

	cursor := canvas.NewLine(cursorColor)
	cursor.Hide()

	p := &ProfileView{
		image:   img,
		strokes: container.NewWithoutLayout(),
		cursor:  cursor,
	}
	p.ExtendBaseWidget(p)
	return p
}

func (p *ProfileView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(p.image, p.strokes, container.NewWithoutLayout(p.cursor)))
}

func (p *ProfileView) MinSize() fyne.Size {
	return fyne.NewSize(ImagePaneWidth, ImagePaneHeight)
}

func (p *ProfileView) Resize(size fyne.Size) {
	p.BaseWidget.Resize(size)
	p.placeCursor()
	if p.OnResize != nil {
		p.OnResize(float64(size.Width), float64(size.Height))
	}
}

func (p *ProfileView) SetImage(img image.Image) {
	p.image.Image = img
	p.image.Refresh()
}

// SetSeries replaces the drawn profiles. Series y values grow upwards from
// the bottom edge.
func (p *ProfileView) SetSeries(series []profile.NormalizedSeries) {
	height := p.Size().Height
	p.strokes.RemoveAll()

	for _, s := range series {
		c := profile.ChannelColor(s.Channel)
		for i := 1; i < len(s.Points); i++ {
			a, b := s.Points[i-1], s.Points[i]
			line := canvas.NewLine(c)
			line.StrokeWidth = profileStrokeWidth
			line.Position1 = fyne.NewPos(float32(a.X), height-float32(a.Y))
			line.Position2 = fyne.NewPos(float32(b.X), height-float32(b.Y))
			p.strokes.Add(line)
		}
	}

	if len(series) == 0 {
		p.cursor.Hide()
	} else {
		p.cursor.Show()
	}
	p.strokes.Refresh()
}

// StrokeCount reports how many line segments are drawn.
func (p *ProfileView) StrokeCount() int {
	return len(p.strokes.Objects)
}

func (p *ProfileView) MouseIn(ev *desktop.MouseEvent)    { p.track(ev.Position) }
func (p *ProfileView) MouseMoved(ev *desktop.MouseEvent) { p.track(ev.Position) }
func (p *ProfileView) MouseOut()                         {}

func (p *ProfileView) Tapped(ev *fyne.PointEvent) {
	p.track(ev.Position)
}

func (p *ProfileView) track(pos fyne.Position) {
	height := p.Size().Height
	if height <= 0 {
		return
	}
	p.relativeY = float64(pos.Y / height)
	p.placeCursor()
	if p.OnCursor != nil {
		p.OnCursor(p.relativeY)
	}
}

func (p *ProfileView) placeCursor() {
	size := p.Size()
	rel := profile.ClampRelative(p.relativeY)
	y := float32(rel) * size.Height
	p.cursor.Position1 = fyne.NewPos(0, y)
	p.cursor.Position2 = fyne.NewPos(size.Width, y)
	p.cursor.Refresh()
}
