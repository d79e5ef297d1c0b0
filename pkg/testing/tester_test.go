package testing

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/markup"
	"github.com/go-drift/stackui/pkg/stack"
	"github.com/go-drift/stackui/pkg/view"
)

const inboxDoc = `
name: inbox
data:
  folders: [Inbox, Archive]
root:
  vstack:
    children:
      - label: Mail
      - vlist:
          bind: folders
          template: {label: "{{index}}: {{item}}"}
`

func TestLayoutTester_MountMarkup(t *testing.T) {
	tester := NewLayoutTesterWithT(t)
	if err := tester.MountMarkup(inboxDoc); err != nil {
		t.Fatal(err)
	}

	got := tester.Find(ByType[*view.Label]()).Texts()
	if diff := cmp.Diff([]string{"Mail", "0: Inbox", "1: Archive"}, got); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}

	if err := tester.Set("folders", []any{"Sent"}); err != nil {
		t.Fatal(err)
	}
	got = tester.Find(ByType[*view.Label]()).Texts()
	if diff := cmp.Diff([]string{"Mail", "0: Sent"}, got); diff != "" {
		t.Errorf("labels after Set (-want +got):\n%s", diff)
	}
}

func TestLayoutTester_SetUnknownKey(t *testing.T) {
	tester := NewLayoutTesterWithT(t)
	if err := tester.Set("x", 1); !stderrors.Is(err, markup.ErrUnknownKey) {
		t.Errorf("Set without a layout: %v", err)
	}
	if err := tester.MountMarkup(inboxDoc); err != nil {
		t.Fatal(err)
	}
	if err := tester.Set("x", 1); !stderrors.Is(err, markup.ErrUnknownKey) {
		t.Errorf("Set unknown key: %v", err)
	}
}

func TestLayoutTester_CollectsBuildErrors(t *testing.T) {
	tester := NewLayoutTesterWithT(t)
	if err := tester.MountMarkup(inboxDoc); err != nil {
		t.Fatal(err)
	}

	if err := tester.Set("folders", "not a list"); err != nil {
		t.Fatal(err)
	}
	if n := len(tester.BuildErrors()); n != 1 {
		t.Fatalf("expected 1 build error, got %d", n)
	}
	var se *errors.StackError
	if !stderrors.As(tester.BuildErrors()[0], &se) || se.Key != "folders" {
		t.Errorf("unexpected build error: %v", tester.BuildErrors()[0])
	}
}

func TestLayoutTester_CleanupRestoresHandler(t *testing.T) {
	before := errors.DefaultHandler
	tester := NewLayoutTester()
	if errors.DefaultHandler != errors.ErrorHandler(tester) {
		t.Fatal("tester not installed as handler")
	}
	tester.Cleanup()
	if errors.DefaultHandler != before {
		t.Error("previous handler not restored")
	}
}

func TestLayoutTester_Snapshot(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewLayoutTesterWithT(t)
	tester.SetDefaults(stack.Config{Spacing: 6})
	if err := tester.MountMarkup(inboxDoc); err != nil {
		t.Fatal(err)
	}

	snap := tester.CaptureSnapshot()
	if snap.Name != "inbox" {
		t.Errorf("Name = %q", snap.Name)
	}
	if diff := cmp.Diff(map[string]any{"folders": []any{"Inbox", "Archive"}}, snap.Data); diff != "" {
		t.Errorf("data (-want +got):\n%s", diff)
	}
	if got := snap.Tree.Properties["spacing"]; got != 6.0 {
		t.Errorf("spacing = %v, want the configured default", got)
	}
	list := snap.Tree.Children[1]
	if list.Type != "List" || list.Properties["generation"] != 1 {
		t.Errorf("unexpected list node: %+v", list)
	}

	path := filepath.Join(t.TempDir(), "inbox.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	tester.CaptureSnapshot().MatchesFile(t, path)
}

func TestLayoutTester_MountPlainTree(t *testing.T) {
	tester := NewLayoutTesterWithT(t)
	if tester.Find(ByText("x")).Exists() {
		t.Error("empty tester should find nothing")
	}
	tester.Mount(sampleTree())
	if tester.Layout() != nil {
		t.Error("plain tree should have no layout")
	}
	if !tester.Find(ByText("footer")).Exists() {
		t.Error("expected to find footer")
	}
}
