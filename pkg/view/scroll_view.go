package view

import "fmt"

// ScrollView clips its content and lets the user scroll it. The content size
// comes from the constraints between the content and the scroll view.
type ScrollView struct {
	Node
	ShowsHorizontalIndicator bool
	ShowsVerticalIndicator   bool
	Bounces                  bool
	ContentOffset            Point
}

// NewScrollView returns a scroll view with both indicators visible and
// bouncing enabled.
func NewScrollView() *ScrollView {
	s := &ScrollView{
		ShowsHorizontalIndicator: true,
		ShowsVerticalIndicator:   true,
		Bounces:                  true,
	}
	s.SetSelf(s)
	return s
}

// Describe implements Describer.
func (s *ScrollView) Describe() string {
	return fmt.Sprintf("ScrollView indicators=%t/%t offset=(%g,%g)",
		s.ShowsHorizontalIndicator, s.ShowsVerticalIndicator, s.ContentOffset.X, s.ContentOffset.Y)
}
