package stack

import (
	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/view"
)

// ScrollStack is a stack inside a scroll view. The scroll view fills the
// container and the stack fills the scroll view's content area. The stack's
// cross-axis dimension is tied to the scroll view, so content only scrolls
// along the stack's axis. Scroll indicators start hidden.
type ScrollStack struct {
	view.Node

	scroll *view.ScrollView
	stack  *Stack
}

// NewHScrollStack returns a horizontally scrolling stack.
func NewHScrollStack(cfg Config, content func() builder.Expr) *ScrollStack {
	return newScrollStack(view.AxisHorizontal, cfg, content)
}

// NewVScrollStack returns a vertically scrolling stack.
func NewVScrollStack(cfg Config, content func() builder.Expr) *ScrollStack {
	return newScrollStack(view.AxisVertical, cfg, content)
}

func newScrollStack(axis view.Axis, cfg Config, content func() builder.Expr) *ScrollStack {
	s := &ScrollStack{
		scroll: view.NewScrollView(),
		stack:  newStack(axis, cfg, content),
	}
	s.SetSelf(s)

	s.scroll.ShowsHorizontalIndicator = false
	s.scroll.ShowsVerticalIndicator = false
	s.AddSubview(s.scroll)
	view.Pin(s.scroll, s, view.EdgeInsets{})

	s.scroll.AddSubview(s.stack)
	view.Pin(s.stack, s.scroll, view.EdgeInsets{})
	if axis == view.AxisHorizontal {
		view.MatchDimension(s.stack, s.scroll, view.AttributeHeight)
	} else {
		view.MatchDimension(s.stack, s.scroll, view.AttributeWidth)
	}
	return s
}

// ScrollView returns the underlying scroll view.
func (s *ScrollStack) ScrollView() *view.ScrollView {
	return s.scroll
}

// ApplyScrollView calls fn with the scroll view and returns s.
func (s *ScrollStack) ApplyScrollView(fn func(*view.ScrollView)) *ScrollStack {
	fn(s.scroll)
	return s
}

// Stack returns the inner stack.
func (s *ScrollStack) Stack() *Stack {
	return s.stack
}

// ArrangedSubviews returns the children of the inner stack in order.
func (s *ScrollStack) ArrangedSubviews() []view.View {
	return s.stack.ArrangedSubviews()
}

// Describe implements view.Describer.
func (s *ScrollStack) Describe() string {
	return axisPrefix(s.stack.Axis) + "ScrollStack"
}
