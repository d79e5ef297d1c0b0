package view

import (
	"fmt"
)

// Attribute names the edge or dimension a constraint acts on.
type Attribute int

const (
	AttributeTop Attribute = iota
	AttributeLeading
	AttributeBottom
	AttributeTrailing
	AttributeWidth
	AttributeHeight
)

func (a Attribute) String() string {
	switch a {
	case AttributeTop:
		return "top"
	case AttributeLeading:
		return "leading"
	case AttributeBottom:
		return "bottom"
	case AttributeTrailing:
		return "trailing"
	case AttributeWidth:
		return "width"
	case AttributeHeight:
		return "height"
	default:
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
}

// Constraint states that Item's Attr equals To's Attr plus Constant. Only the
// constant is mutable after creation; the host toolkit re-solves on change.
type Constraint struct {
	Item     View
	Attr     Attribute
	To       View
	Constant float64
	active   bool
}

// Active reports whether the constraint is installed.
func (c *Constraint) Active() bool {
	return c.active
}

// Deactivate uninstalls the constraint from its item.
func (c *Constraint) Deactivate() {
	if !c.active {
		return
	}
	c.active = false
	n := c.Item.node()
	for i, other := range n.constraints {
		if other == c {
			n.constraints = append(n.constraints[:i:i], n.constraints[i+1:]...)
			break
		}
	}
}

// Describe returns the short form used in tree dumps: "top+8" for edges and
// "width=ScrollView" for dimensions.
func (c *Constraint) Describe() string {
	switch c.Attr {
	case AttributeWidth, AttributeHeight:
		return fmt.Sprintf("%s=%s", c.Attr, TypeName(c.To))
	default:
		return fmt.Sprintf("%s%+g", c.Attr, c.Constant)
	}
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s == %T.%s %+g", c.Attr, c.To, c.Attr, c.Constant)
}

// Constrain installs an equality constraint between item and to.
func Constrain(item View, attr Attribute, to View, constant float64) *Constraint {
	c := &Constraint{
		Item:     item.node().Self(),
		Attr:     attr,
		To:       to.node().Self(),
		Constant: constant,
		active:   true,
	}
	n := item.node()
	n.constraints = append(n.constraints, c)
	return c
}

// MatchDimension constrains item's width or height to equal to's.
func MatchDimension(item, to View, attr Attribute) *Constraint {
	if attr != AttributeWidth && attr != AttributeHeight {
		panic(fmt.Sprintf("view.MatchDimension: %s is not a dimension", attr))
	}
	return Constrain(item, attr, to, 0)
}

// Anchors are the four edge constraints that pin a child inside a container.
type Anchors struct {
	Top, Leading, Bottom, Trailing *Constraint
}

// Pin constrains all four edges of child to parent, inset by insets. The
// bottom and trailing constants are negated, so a positive inset always moves
// the child's edge inward. Negation never produces -0.
func Pin(child, parent View, insets EdgeInsets) *Anchors {
	a := &Anchors{
		Top:      Constrain(child, AttributeTop, parent, 0),
		Leading:  Constrain(child, AttributeLeading, parent, 0),
		Bottom:   Constrain(child, AttributeBottom, parent, 0),
		Trailing: Constrain(child, AttributeTrailing, parent, 0),
	}
	a.SetInsets(insets)
	return a
}

// SetInsets adjusts the four edge constants in place.
func (a *Anchors) SetInsets(insets EdgeInsets) {
	a.Top.Constant = insets.Top
	a.Bottom.Constant = 0 - insets.Bottom
	a.Leading.Constant = insets.Left
	a.Trailing.Constant = 0 - insets.Right
}

// Insets reads the edge constants back as insets.
func (a *Anchors) Insets() EdgeInsets {
	return EdgeInsets{
		Top:    a.Top.Constant,
		Left:   a.Leading.Constant,
		Bottom: 0 - a.Bottom.Constant,
		Right:  0 - a.Trailing.Constant,
	}
}

// Active reports whether all four edge constraints are still installed.
func (a *Anchors) Active() bool {
	return a.Top.active && a.Leading.active && a.Bottom.active && a.Trailing.active
}
