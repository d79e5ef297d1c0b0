package stack

import (
	"fmt"

	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/core"
	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/view"
)

// List is a stack whose children are rebuilt from a publisher. Every value
// the publisher delivers replaces the whole child list: the old children are
// detached from the stack and from the view tree, content is evaluated with
// the new value, and the result is arranged in order. Nothing is diffed; an
// identical value still rebuilds.
//
// A panic in content is recovered and reported to the error handler as a
// *errors.BuildError, and the list stays empty until the next value.
type List[T any] struct {
	view.StackView

	content    func(T) builder.Expr
	cancel     func()
	generation int
	disposed   bool
}

// NewHList returns a horizontal list bound to pub. If pub already holds a
// value the list is built from it before NewHList returns; otherwise it
// starts empty.
func NewHList[T any](cfg Config, pub *core.Publisher[T], content func(T) builder.Expr) *List[T] {
	return newList(view.AxisHorizontal, cfg, pub, content)
}

// NewVList returns a vertical list bound to pub. If pub already holds a
// value the list is built from it before NewVList returns; otherwise it
// starts empty.
func NewVList[T any](cfg Config, pub *core.Publisher[T], content func(T) builder.Expr) *List[T] {
	return newList(view.AxisVertical, cfg, pub, content)
}

func newList[T any](axis view.Axis, cfg Config, pub *core.Publisher[T], content func(T) builder.Expr) *List[T] {
	l := &List[T]{content: content}
	l.Axis = axis
	cfg.applyTo(&l.StackView)
	l.SetSelf(l)
	l.cancel = pub.Subscribe(l.rebuild)
	return l
}

func (l *List[T]) rebuild(value T) {
	if l.disposed {
		return
	}
	l.generation++
	l.RemoveAllArrangedSubviews()
	if l.content == nil {
		return
	}
	arrange(&l.StackView, l.evaluate(value))
}

func (l *List[T]) evaluate(value T) (e builder.Expr) {
	defer errors.RecoverBuild(l.name(), l.generation, func() {
		e = builder.Expr{}
	})
	return l.content(value)
}

// Generation returns how many times the list has been rebuilt. It is zero
// until the publisher delivers a value.
func (l *List[T]) Generation() int {
	return l.generation
}

// Dispose cancels the subscription. The current children stay in place and
// later values are ignored. Dispose is idempotent.
func (l *List[T]) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	l.cancel()
}

// Disposed reports whether Dispose has been called.
func (l *List[T]) Disposed() bool {
	return l.disposed
}

func (l *List[T]) name() string {
	return axisPrefix(l.Axis) + "List"
}

// Describe implements view.Describer.
func (l *List[T]) Describe() string {
	return fmt.Sprintf("%s generation=%d", describeStack(l.name(), &l.StackView), l.generation)
}
