package testing

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-drift/stackui/pkg/view"
)

// Finder locates views in a view tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root view.View) []view.View
	// Description returns a human-readable description for error messages.
	Description() string
}

// Find evaluates f against the tree rooted at root.
func Find(root view.View, f Finder) FinderResult {
	return FinderResult{views: f.Evaluate(root), finder: f}
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []view.View
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() view.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.description()))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() view.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) view.View {
	if index < 0 || index >= len(r.views) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.views), r.description()))
	}
	return r.views[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []view.View {
	return r.views
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.views)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.views) > 0
}

// Texts returns the text of every matched label, skipping other views.
func (r FinderResult) Texts() []string {
	var out []string
	for _, v := range r.views {
		if l, ok := v.(*view.Label); ok {
			out = append(out, l.Text)
		}
	}
	return out
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// typeFinder matches views of the specified type.
type typeFinder struct {
	viewType reflect.Type
	typeName string
}

func (f *typeFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		return reflect.TypeOf(v) == f.viewType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches views of type T, such as
// ByType[*view.Label]().
func ByType[T view.View]() Finder {
	t := reflect.TypeFor[T]()
	return &typeFinder{viewType: t, typeName: t.String()}
}

// textFinder matches labels by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		l, ok := v.(*view.Label)
		return ok && l.Text == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches [view.Label] with exact content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches labels containing a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		l, ok := v.(*view.Label)
		return ok && strings.Contains(l.Text, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches [view.Label] containing the
// given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches views satisfying a predicate.
type predicateFinder struct {
	fn   func(view.View) bool
	desc string
}

func (f *predicateFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches views satisfying fn.
func ByPredicate(fn func(view.View) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds views matching 'matching' that are descendants
// of views matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root view.View) []view.View {
	var results []view.View
	for _, ancestor := range f.of.Evaluate(root) {
		// Search within each ancestor's subtree (skip the ancestor itself)
		for _, child := range ancestor.Subviews() {
			for _, match := range f.matching.Evaluate(child) {
				if !slices.Contains(results, match) {
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches views satisfying 'matching'
// that are descendants of views matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds views matching 'matching' that are ancestors of views
// matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root view.View) []view.View {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	var results []view.View
	for _, candidate := range f.matching.Evaluate(root) {
		for _, desc := range descendants {
			if desc != candidate && view.IsDescendant(desc, candidate) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches views satisfying 'matching' that
// are ancestors of views matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// views that satisfy the predicate.
func collectMatches(root view.View, predicate func(view.View) bool) []view.View {
	var results []view.View
	walkTree(root, func(v view.View) {
		if predicate(v) {
			results = append(results, v)
		}
	})
	return results
}

// walkTree performs a depth-first pre-order traversal of the view tree.
func walkTree(root view.View, visitor func(view.View)) {
	visitor(root.Self())
	for _, child := range root.Subviews() {
		walkTree(child, visitor)
	}
}
