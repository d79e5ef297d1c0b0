package view

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Axial is implemented by views whose appearance depends on the axis of the
// stack they are placed in, such as spacers and dividers.
type Axial interface {
	View
	SetAxis(axis Axis)
	Axis() Axis
}

// Label displays a single line of text.
type Label struct {
	Node
	Text string
}

// NewLabel returns a label showing text.
func NewLabel(text string) *Label {
	l := &Label{Text: text}
	l.SetSelf(l)
	return l
}

// IntrinsicSize returns the natural size of the text measured with the fixed
// 7x13 bitmap face. The host toolkit uses its own fonts for layout; this
// measure keeps previews and snapshots deterministic.
func (l *Label) IntrinsicSize() Size {
	face := basicfont.Face7x13
	width := font.MeasureString(face, l.Text)
	return Size{
		Width:  float64(width.Ceil()),
		Height: float64(face.Metrics().Height.Ceil()),
	}
}

// Describe implements Describer.
func (l *Label) Describe() string {
	return fmt.Sprintf("Label %q", l.Text)
}

// Spacer is flexible empty space along the axis of its stack.
type Spacer struct {
	Node
	// Length is the minimum extent along the axis. Zero means no minimum.
	Length float64
	axis   Axis
}

// NewSpacer returns a spacer with no minimum length.
func NewSpacer() *Spacer {
	s := &Spacer{}
	s.SetSelf(s)
	return s
}

// SetAxis implements Axial.
func (s *Spacer) SetAxis(axis Axis) { s.axis = axis }

// Axis implements Axial.
func (s *Spacer) Axis() Axis { return s.axis }

// Describe implements Describer.
func (s *Spacer) Describe() string {
	return fmt.Sprintf("Spacer axis=%s length=%g", s.axis, s.Length)
}

// Divider is a thin line drawn across the axis of its stack: a horizontal
// rule inside a vertical stack and a vertical rule inside a horizontal one.
type Divider struct {
	Node
	Thickness float64
	Color     color.NRGBA
	axis      Axis
}

// NewDivider returns a 1pt light gray divider.
func NewDivider() *Divider {
	d := &Divider{
		Thickness: 1,
		Color:     color.NRGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff},
	}
	d.SetSelf(d)
	return d
}

// SetAxis implements Axial.
func (d *Divider) SetAxis(axis Axis) { d.axis = axis }

// Axis implements Axial.
func (d *Divider) Axis() Axis { return d.axis }

// Describe implements Describer.
func (d *Divider) Describe() string {
	return fmt.Sprintf("Divider axis=%s thickness=%g", d.axis, d.Thickness)
}

// ColorBox fills its bounds with a solid color.
type ColorBox struct {
	Node
	Color color.NRGBA
}

// NewColorBox returns a box filled with c.
func NewColorBox(c color.NRGBA) *ColorBox {
	b := &ColorBox{Color: c}
	b.SetSelf(b)
	return b
}

// Describe implements Describer.
func (b *ColorBox) Describe() string {
	return fmt.Sprintf("ColorBox #%02x%02x%02x%02x", b.Color.R, b.Color.G, b.Color.B, b.Color.A)
}
