package testing

import (
	"testing"

	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/markup"
	"github.com/go-drift/stackui/pkg/stack"
	"github.com/go-drift/stackui/pkg/view"
)

// LayoutTester mounts a view tree or a markup layout for assertions. While
// it is alive it is the global error handler, so reported errors are
// collected instead of logged.
type LayoutTester struct {
	root     view.View
	layout   *markup.Layout
	defaults stack.Config

	errs        []*errors.StackError
	panics      []*errors.PanicError
	buildErrors []*errors.BuildError
	prevHandler errors.ErrorHandler
}

// NewLayoutTester creates a tester and installs it as the error handler.
// Call Cleanup() when done, or use NewLayoutTesterWithT() instead.
func NewLayoutTester() *LayoutTester {
	t := &LayoutTester{prevHandler: errors.DefaultHandler}
	errors.SetHandler(t)
	return t
}

// NewLayoutTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewLayoutTesterWithT(t *testing.T) *LayoutTester {
	tester := NewLayoutTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disposes the mounted layout and restores the previous error
// handler.
func (t *LayoutTester) Cleanup() {
	t.unmount()
	errors.SetHandler(t.prevHandler)
}

// SetDefaults sets the stack parameters used for markup nodes that leave
// them unset. Must be called before MountMarkup.
func (t *LayoutTester) SetDefaults(cfg stack.Config) {
	t.defaults = cfg
}

// Mount replaces the tree under test with root.
func (t *LayoutTester) Mount(root view.View) {
	t.unmount()
	t.root = root
}

// MountMarkup parses and builds a markup document and mounts its root.
func (t *LayoutTester) MountMarkup(src string) error {
	doc, err := markup.Parse([]byte(src))
	if err != nil {
		return err
	}
	layout, err := markup.Build(doc, nil, t.defaults)
	if err != nil {
		return err
	}
	t.unmount()
	t.layout = layout
	t.root = layout.Root
	return nil
}

func (t *LayoutTester) unmount() {
	if t.layout != nil {
		t.layout.Dispose()
		t.layout = nil
	}
	t.root = nil
}

// Root returns the mounted root view.
func (t *LayoutTester) Root() view.View {
	return t.root
}

// Layout returns the mounted markup layout, or nil if a plain view tree is
// mounted.
func (t *LayoutTester) Layout() *markup.Layout {
	return t.layout
}

// Set publishes value for a data key of the mounted markup layout.
func (t *LayoutTester) Set(key string, value any) error {
	if t.layout == nil {
		return errors.New("testing.Set", errors.KindBinding, key, markup.ErrUnknownKey)
	}
	return t.layout.Scope.Set(key, value)
}

// Find evaluates f against the mounted tree.
func (t *LayoutTester) Find(f Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: f}
	}
	return Find(t.root, f)
}

// CaptureSnapshot captures the mounted tree, and the current data for a
// markup layout.
func (t *LayoutTester) CaptureSnapshot() *Snapshot {
	if t.root == nil {
		return &Snapshot{}
	}
	snap := Capture(t.root)
	if t.layout != nil {
		snap.Name = t.layout.Name
		snap.Data = t.layout.Scope.Snapshot()
	}
	return snap
}

// Errors returns the errors reported since the tester was created.
func (t *LayoutTester) Errors() []*errors.StackError {
	return t.errs
}

// Panics returns the panics reported since the tester was created.
func (t *LayoutTester) Panics() []*errors.PanicError {
	return t.panics
}

// BuildErrors returns the build errors reported since the tester was created.
func (t *LayoutTester) BuildErrors() []*errors.BuildError {
	return t.buildErrors
}

// HandleError implements errors.ErrorHandler.
func (t *LayoutTester) HandleError(err *errors.StackError) {
	t.errs = append(t.errs, err)
}

// HandlePanic implements errors.ErrorHandler.
func (t *LayoutTester) HandlePanic(err *errors.PanicError) {
	t.panics = append(t.panics, err)
}

// HandleBuildError implements errors.ErrorHandler.
func (t *LayoutTester) HandleBuildError(err *errors.BuildError) {
	t.buildErrors = append(t.buildErrors, err)
}
