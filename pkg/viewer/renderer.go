// Package viewer provides an interactive fyne widget for snapping and
// measuring on a scene.
package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosnap/pkg/measurement"
	"github.com/philipparndt/gosnap/pkg/snap"
)

const (
	rotateSpeed = 0.01
	zoomSpeed   = 0.001
	panStep     = 20.0
)

// ModelRenderer renders a scene and turns taps into snapped measurements
type ModelRenderer struct {
	widget.BaseWidget
	session    *Session
	image      *canvas.Image
	size       fyne.Size
	isDragging bool

	onSnap        func(result snap.Result)
	onMeasurement func(m measurement.Measurement)
	onError       func(err error)
}

// NewModelRenderer creates a new 3D view for a session
func NewModelRenderer(session *Session) *ModelRenderer {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScalePixels

	r := &ModelRenderer{
		session: session,
		image:   img,
	}
	r.ExtendBaseWidget(r)
	return r
}

// Session returns the interaction state behind the widget
func (r *ModelRenderer) Session() *Session {
	return r.session
}

// SetOnSnap sets the callback for every snapped point
func (r *ModelRenderer) SetOnSnap(callback func(result snap.Result)) {
	r.onSnap = callback
}

// SetOnMeasurement sets the callback for completed measurements
func (r *ModelRenderer) SetOnMeasurement(callback func(m measurement.Measurement)) {
	r.onMeasurement = callback
}

// SetOnError sets the callback for render failures
func (r *ModelRenderer) SetOnError(callback func(err error)) {
	r.onError = callback
}

// CreateRenderer creates the renderer for the widget
func (r *ModelRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &modelWidgetRenderer{renderer: r}
}

// Render redraws the view at the current widget size
func (r *ModelRenderer) Render() {
	width, height := int(r.size.Width), int(r.size.Height)
	if width <= 0 || height <= 0 {
		return
	}

	frame, err := r.session.Frame(width, height)
	if err != nil {
		if r.onError != nil {
			r.onError(err)
		}
		return
	}
	r.image.Image = frame
	r.image.Refresh()
}

// Dragged handles mouse drag events for rotation
func (r *ModelRenderer) Dragged(event *fyne.DragEvent) {
	r.isDragging = true
	r.session.Rotate(float64(event.Dragged.DY)*rotateSpeed, float64(-event.Dragged.DX)*rotateSpeed)
	r.Render()
}

// DragEnd handles the end of a drag event
func (r *ModelRenderer) DragEnd() {
	r.isDragging = false
}

// Scrolled handles scroll events for zooming
func (r *ModelRenderer) Scrolled(event *fyne.ScrollEvent) {
	r.session.Zoom(-float64(event.Scrolled.DY) * zoomSpeed)
	r.Render()
}

// Tapped snaps the tapped point and adds it to the current measurement
func (r *ModelRenderer) Tapped(event *fyne.PointEvent) {
	if r.isDragging {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(r); c != nil {
		c.Focus(r)
	}

	result, m, ok := r.session.Select(
		float64(event.Position.X), float64(event.Position.Y),
		int(r.size.Width), int(r.size.Height),
	)
	if !ok {
		return
	}
	r.Render()

	if r.onSnap != nil {
		r.onSnap(result)
	}
	if m != nil && r.onMeasurement != nil {
		r.onMeasurement(*m)
	}
}

// FocusGained is part of fyne.Focusable
func (r *ModelRenderer) FocusGained() {}

// FocusLost is part of fyne.Focusable
func (r *ModelRenderer) FocusLost() {}

// TypedRune is part of fyne.Focusable
func (r *ModelRenderer) TypedRune(rune) {}

// TypedKey pans with the arrow keys and drops a pending point with Escape
func (r *ModelRenderer) TypedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyLeft:
		r.session.Pan(-panStep, 0)
	case fyne.KeyRight:
		r.session.Pan(panStep, 0)
	case fyne.KeyUp:
		r.session.Pan(0, panStep)
	case fyne.KeyDown:
		r.session.Pan(0, -panStep)
	case fyne.KeyEscape:
		r.session.CancelPending()
	default:
		return
	}
	r.Render()
}

// ClearSelection clears picked points and measurements
func (r *ModelRenderer) ClearSelection() {
	r.session.Clear()
	r.Render()
}

// modelWidgetRenderer implements fyne.WidgetRenderer
type modelWidgetRenderer struct {
	renderer *ModelRenderer
}

func (m *modelWidgetRenderer) Layout(size fyne.Size) {
	m.renderer.size = size
	m.renderer.image.Resize(size)
	m.renderer.Render()
}

func (m *modelWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *modelWidgetRenderer) Refresh() {
	m.renderer.Render()
	canvas.Refresh(m.renderer)
}

func (m *modelWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{m.renderer.image}
}

func (m *modelWidgetRenderer) Destroy() {}
