package view

import (
	"fmt"
	"slices"
	"strings"
)

// Distribution controls how a stack view sizes its arranged subviews along
// its axis.
type Distribution int

const (
	// DistributionFill resizes subviews so they fill the available space.
	DistributionFill Distribution = iota
	// DistributionFillEqually gives every subview the same size along the axis.
	DistributionFillEqually
	// DistributionFillProportionally sizes subviews in proportion to their
	// intrinsic size.
	DistributionFillProportionally
	// DistributionEqualSpacing keeps equal gaps between subviews.
	DistributionEqualSpacing
	// DistributionEqualCentering keeps equal distance between subview centers.
	DistributionEqualCentering
)

var distributionNames = []string{
	"fill",
	"fill_equally",
	"fill_proportionally",
	"equal_spacing",
	"equal_centering",
}

// String returns a human-readable representation of the distribution.
func (d Distribution) String() string {
	if d >= 0 && int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return fmt.Sprintf("Distribution(%d)", int(d))
}

// ParseDistribution converts a name produced by String back to a Distribution.
// The empty string yields DistributionFill.
func ParseDistribution(s string) (Distribution, error) {
	if s == "" {
		return DistributionFill, nil
	}
	if i := slices.Index(distributionNames, strings.ToLower(s)); i >= 0 {
		return Distribution(i), nil
	}
	return 0, fmt.Errorf("unknown distribution %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Distribution) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Distribution) UnmarshalText(text []byte) error {
	v, err := ParseDistribution(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Alignment controls how a stack view positions arranged subviews across
// its axis.
type Alignment int

const (
	// AlignmentFill stretches subviews across the axis.
	AlignmentFill Alignment = iota
	// AlignmentLeading aligns to the leading edge (vertical stacks).
	AlignmentLeading
	// AlignmentTop aligns to the top edge (horizontal stacks).
	AlignmentTop
	// AlignmentFirstBaseline aligns text baselines of the first line.
	AlignmentFirstBaseline
	// AlignmentCenter centers subviews across the axis.
	AlignmentCenter
	// AlignmentTrailing aligns to the trailing edge (vertical stacks).
	AlignmentTrailing
	// AlignmentBottom aligns to the bottom edge (horizontal stacks).
	AlignmentBottom
	// AlignmentLastBaseline aligns text baselines of the last line.
	AlignmentLastBaseline
)

var alignmentNames = []string{
	"fill",
	"leading",
	"top",
	"first_baseline",
	"center",
	"trailing",
	"bottom",
	"last_baseline",
}

// String returns a human-readable representation of the alignment.
func (a Alignment) String() string {
	if a >= 0 && int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// ParseAlignment converts a name produced by String back to an Alignment.
// The empty string yields AlignmentFill.
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return AlignmentFill, nil
	}
	if i := slices.Index(alignmentNames, strings.ToLower(s)); i >= 0 {
		return Alignment(i), nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := ParseAlignment(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// StackView arranges an ordered list of subviews along one axis. Arranged
// subviews are always subviews too; a plain subview is not arranged.
type StackView struct {
	Node
	Axis         Axis
	Distribution Distribution
	Alignment    Alignment
	Spacing      float64

	arranged []View
}

// NewStackView returns an empty stack view.
func NewStackView(axis Axis) *StackView {
	s := &StackView{Axis: axis}
	s.SetSelf(s)
	return s
}

// ArrangedSubviews returns a copy of the arranged subviews in order.
func (s *StackView) ArrangedSubviews() []View {
	return slices.Clone(s.arranged)
}

// AddArrangedSubview appends v to the arranged subviews, adding it as a
// subview first.
func (s *StackView) AddArrangedSubview(v View) {
	s.AddSubview(v)
	s.arranged = append(s.arranged, v.node().Self())
}

// RemoveArrangedSubview stops arranging v. v stays a subview.
func (s *StackView) RemoveArrangedSubview(v View) {
	n := v.node()
	s.arranged = slices.DeleteFunc(s.arranged, func(other View) bool {
		return other.node() == n
	})
}

// RemoveAllArrangedSubviews detaches every arranged subview and every plain
// subview, leaving the stack empty.
func (s *StackView) RemoveAllArrangedSubviews() {
	for _, v := range s.ArrangedSubviews() {
		s.RemoveArrangedSubview(v)
		v.node().RemoveFromSuperview()
	}
	s.RemoveAllSubviews()
}

func (s *StackView) willRemoveSubview(child View) {
	s.RemoveArrangedSubview(child)
}

// Describe implements Describer.
func (s *StackView) Describe() string {
	return fmt.Sprintf("StackView axis=%s distribution=%s alignment=%s spacing=%g",
		s.Axis, s.Distribution, s.Alignment, s.Spacing)
}
