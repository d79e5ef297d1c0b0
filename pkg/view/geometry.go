package view

import (
	"fmt"
)

// Axis represents the direction a stack arranges its children in.
// AxisVertical is the zero value.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Size is a width and height in points.
type Size struct {
	Width, Height float64
}

// Point is a position in points.
type Point struct {
	X, Y float64
}

// EdgeInsets holds the distance between a child's edges and its container's.
type EdgeInsets struct {
	Top    float64 `yaml:"top" json:"top"`
	Left   float64 `yaml:"left" json:"left"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Right  float64 `yaml:"right" json:"right"`
}

// EdgeInsetsAll returns insets with the same value on every edge.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Top: v, Left: v, Bottom: v, Right: v}
}

// EdgeInsetsSymmetric returns insets with horizontal applied to left and right
// and vertical applied to top and bottom.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Top: vertical, Left: horizontal, Bottom: vertical, Right: horizontal}
}

// Horizontal returns the sum of the left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

func (e EdgeInsets) String() string {
	return fmt.Sprintf("{top:%g left:%g bottom:%g right:%g}", e.Top, e.Left, e.Bottom, e.Right)
}
