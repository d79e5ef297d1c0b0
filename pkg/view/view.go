// Package view is the host substrate stackui builds on: a retained tree of
// views with ordered subviews, stack and scroll views, and edge constraints.
//
// The package does no layout. It records the structure and the constraint
// parameters a native toolkit needs, and nothing else.
package view

import (
	"slices"
)

// View is implemented by every node in the view tree. Embed [Node] and call
// [Node.SetSelf] from the constructor to satisfy it:
//
//	type Badge struct {
//	    view.Node
//	    Count int
//	}
//
//	func NewBadge(n int) *Badge {
//	    b := &Badge{Count: n}
//	    b.SetSelf(b)
//	    return b
//	}
type View interface {
	Self() View
	Superview() View
	Subviews() []View
	Constraints() []*Constraint
	AddSubview(child View)
	RemoveFromSuperview()

	node() *Node
}

// Node provides tree bookkeeping for a view.
type Node struct {
	self        View
	superview   View
	subviews    []View
	constraints []*Constraint
}

func (n *Node) node() *Node { return n }

// SetSelf records the outermost view embedding this node. Parents store the
// outer view, so type switches on subviews see the concrete type.
func (n *Node) SetSelf(self View) {
	n.self = self
}

// Self returns the outermost view embedding this node.
func (n *Node) Self() View {
	if n.self != nil {
		return n.self
	}
	return n
}

// Superview returns the parent view, or nil for a detached view.
func (n *Node) Superview() View {
	return n.superview
}

// Subviews returns a copy of the child list in insertion order.
func (n *Node) Subviews() []View {
	return slices.Clone(n.subviews)
}

// Constraints returns a copy of the active constraints owned by this view.
func (n *Node) Constraints() []*Constraint {
	return slices.Clone(n.constraints)
}

// AddSubview appends child to this view's subviews. A child that already has
// a superview is removed from it first.
func (n *Node) AddSubview(child View) {
	c := child.node()
	if c.superview != nil {
		c.RemoveFromSuperview()
	}
	c.superview = n.Self()
	n.subviews = append(n.subviews, c.Self())
}

// RemoveFromSuperview detaches this view from its parent. Constraints that tie
// this view to the old parent are deactivated. It does nothing for a detached
// view.
func (n *Node) RemoveFromSuperview() {
	parent := n.superview
	if parent == nil {
		return
	}
	self := n.Self()
	p := parent.node()
	if hook, ok := p.Self().(subviewObserver); ok {
		hook.willRemoveSubview(self)
	}
	p.subviews = slices.DeleteFunc(p.subviews, func(v View) bool {
		return v == self
	})
	for _, c := range n.constraints {
		if c.To != nil && c.To.node() == p {
			c.active = false
		}
	}
	n.constraints = slices.DeleteFunc(n.constraints, func(c *Constraint) bool {
		return !c.active
	})
	n.superview = nil
}

// RemoveAllSubviews detaches every subview.
func (n *Node) RemoveAllSubviews() {
	for _, child := range n.Subviews() {
		child.node().RemoveFromSuperview()
	}
}

// IsDescendant reports whether v is ancestor itself or lies below it.
func IsDescendant(v, ancestor View) bool {
	for cur := v; cur != nil; cur = cur.node().superview {
		if cur.node() == ancestor.node() {
			return true
		}
	}
	return false
}

// subviewObserver is implemented by views that keep extra bookkeeping about
// their subviews, such as the arranged list of a StackView.
type subviewObserver interface {
	willRemoveSubview(child View)
}
