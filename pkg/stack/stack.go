// Package stack provides the containers of the layout DSL: horizontal and
// vertical stacks, their scrolling variants, lists that rebuild from a
// publisher, and padding boxes.
//
// Containers consume a [builder.Expr] and arrange its flattened children in
// declaration order:
//
//	header := stack.NewVStack(stack.Config{Spacing: 8}, func() builder.Expr {
//	    return builder.Seq(
//	        builder.One(view.NewLabel("Title")),
//	        builder.One(view.NewDivider()),
//	    )
//	})
//
// Every container is a [view.View] and can be nested in any other container.
// Like the rest of stackui, containers must only be used from the UI
// goroutine.
package stack

import (
	"fmt"

	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/view"
)

// Config holds the arrangement parameters shared by every stack container.
// The zero value fills along both axes with no spacing.
type Config struct {
	Distribution view.Distribution `yaml:"distribution" json:"distribution"`
	Alignment    view.Alignment    `yaml:"alignment" json:"alignment"`
	Spacing      float64           `yaml:"spacing" json:"spacing"`
}

func (c Config) applyTo(s *view.StackView) {
	s.Distribution = c.Distribution
	s.Alignment = c.Alignment
	s.Spacing = c.Spacing
}

// Stack arranges a fixed list of children along one axis. Its content is
// evaluated once, at construction.
type Stack struct {
	view.StackView
}

// NewHStack returns a horizontal stack holding the children content
// produces. A nil content yields an empty stack.
func NewHStack(cfg Config, content func() builder.Expr) *Stack {
	return newStack(view.AxisHorizontal, cfg, content)
}

// NewVStack returns a vertical stack holding the children content produces.
// A nil content yields an empty stack.
func NewVStack(cfg Config, content func() builder.Expr) *Stack {
	return newStack(view.AxisVertical, cfg, content)
}

func newStack(axis view.Axis, cfg Config, content func() builder.Expr) *Stack {
	s := &Stack{}
	s.Axis = axis
	cfg.applyTo(&s.StackView)
	s.SetSelf(s)
	if content != nil {
		arrange(&s.StackView, content())
	}
	return s
}

// Apply calls fn with s and returns s, for configuring the stack inline.
func (s *Stack) Apply(fn func(*Stack)) *Stack {
	fn(s)
	return s
}

// Describe implements view.Describer.
func (s *Stack) Describe() string {
	return describeStack(axisPrefix(s.Axis)+"Stack", &s.StackView)
}

// arrange flattens e, assigns the stack's axis to axis-dependent children and
// appends them in order.
func arrange(s *view.StackView, e builder.Expr) int {
	children := builder.Flatten(e)
	builder.ApplyAxis(children, s.Axis)
	for _, c := range children {
		s.AddArrangedSubview(c.View)
	}
	return len(children)
}

func axisPrefix(axis view.Axis) string {
	if axis == view.AxisHorizontal {
		return "H"
	}
	return "V"
}

func describeStack(name string, s *view.StackView) string {
	return fmt.Sprintf("%s distribution=%s alignment=%s spacing=%g",
		name, s.Distribution, s.Alignment, s.Spacing)
}
