// Package testing provides helpers for testing stackui layouts.
//
// # Quick Start
//
// Mount a view tree or a markup document, drive its data and make
// assertions:
//
//	func TestProfile(t *testing.T) {
//	    tester := stacktest.NewLayoutTesterWithT(t)
//	    tester.MountMarkup(profileYAML)
//
//	    if !tester.Find(stacktest.ByText("Profile")).Exists() {
//	        t.Error("expected title label")
//	    }
//
//	    tester.Set("tags", []any{"go"})
//	    if got := tester.Find(stacktest.ByType[*view.Label]()).Count(); got != 2 {
//	        t.Errorf("expected 2 labels, got %d", got)
//	    }
//	}
//
// The tester installs an error handler for its lifetime, so build errors
// raised by list content can be asserted with [LayoutTester.BuildErrors].
//
// # Snapshot Testing
//
// Capture and compare view tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/profile.snapshot.json")
//
// Update snapshots with:
//
//	STACKUI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import stacktest "github.com/go-drift/stackui/pkg/testing"
package testing
