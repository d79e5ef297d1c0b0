package builder

import (
	"github.com/go-drift/stackui/pkg/view"
)

// Role says how a container treats a child when arranging it.
type Role uint8

const (
	// RolePlain children are arranged as they are.
	RolePlain Role = iota
	// RoleAxisDependent children take the axis of the container that
	// arranges them.
	RoleAxisDependent
)

func (r Role) String() string {
	if r == RoleAxisDependent {
		return "axis_dependent"
	}
	return "plain"
}

// Child is one flattened entry: a view and the role resolved for it when the
// expression was created.
type Child struct {
	View view.View
	Role Role
}

// NewChild resolves the role of v once.
func NewChild(v view.View) Child {
	if _, ok := v.(view.Axial); ok {
		return Child{View: v, Role: RoleAxisDependent}
	}
	return Child{View: v, Role: RolePlain}
}

// ApplyAxis assigns axis to every axis-dependent child. A child marked
// axis-dependent whose view does not implement view.Axial is left alone.
func ApplyAxis(children []Child, axis view.Axis) {
	for _, c := range children {
		if c.Role != RoleAxisDependent {
			continue
		}
		if a, ok := c.View.(view.Axial); ok {
			a.SetAxis(axis)
		}
	}
}

// ChildViews returns the views of children in order.
func ChildViews(children []Child) []view.View {
	out := make([]view.View, len(children))
	for i, c := range children {
		out[i] = c.View
	}
	return out
}
