package stack

import (
	"fmt"

	"github.com/go-drift/stackui/pkg/core"
	"github.com/go-drift/stackui/pkg/view"
)

// Box pins a single child inside itself, inset on every edge. A bound box
// takes its insets from a publisher and adjusts the four edge constants in
// place on every value; the child is never replaced by an update.
type Box struct {
	view.Node

	insets   view.EdgeInsets
	child    view.View
	anchors  *view.Anchors
	cancel   func()
	disposed bool
}

// NewBox returns a box holding the view content returns, inset by insets.
// A nil content, or one returning nil, yields an empty box.
func NewBox(insets view.EdgeInsets, content func() view.View) *Box {
	b := &Box{insets: insets}
	b.SetSelf(b)
	b.Rebuild(content)
	return b
}

// NewBoundBox returns a box whose insets follow pub. The child is pinned with
// zero insets first; if pub already holds a value it is applied before
// NewBoundBox returns.
func NewBoundBox(pub *core.Publisher[view.EdgeInsets], content func() view.View) *Box {
	b := NewBox(view.EdgeInsets{}, content)
	b.cancel = pub.Subscribe(b.setInsets)
	return b
}

func (b *Box) setInsets(insets view.EdgeInsets) {
	if b.disposed {
		return
	}
	b.insets = insets
	if b.anchors != nil {
		b.anchors.SetInsets(insets)
	}
}

// Rebuild replaces the child with the view content returns. The old child is
// detached if the box still holds it, and the new one is pinned with the
// current insets.
func (b *Box) Rebuild(content func() view.View) {
	if b.child != nil {
		// A child since moved into another container stays there.
		if b.child.Superview() == b.Self() {
			b.child.RemoveFromSuperview()
		}
		b.child = nil
		b.anchors = nil
	}
	if content == nil {
		return
	}
	child := content()
	if child == nil {
		return
	}
	b.child = child.Self()
	b.AddSubview(b.child)
	b.anchors = view.Pin(b.child, b, b.insets)
}

// Content returns the current child, or nil for an empty box.
func (b *Box) Content() view.View {
	return b.child
}

// Insets returns the insets currently applied to the child.
func (b *Box) Insets() view.EdgeInsets {
	return b.insets
}

// Apply calls fn with b and returns b.
func (b *Box) Apply(fn func(*Box)) *Box {
	fn(b)
	return b
}

// Dispose cancels the insets subscription of a bound box. It does nothing for
// a box created with NewBox. Dispose is idempotent.
func (b *Box) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	if b.cancel != nil {
		b.cancel()
	}
}

// Describe implements view.Describer.
func (b *Box) Describe() string {
	return fmt.Sprintf("Box insets=%s", b.insets)
}
