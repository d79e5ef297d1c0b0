package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/stack"
	"github.com/go-drift/stackui/pkg/view"
)

func paddedRow(texts ...string) view.View {
	return stack.NewBox(view.EdgeInsetsAll(4), func() view.View {
		return stack.NewHStack(stack.Config{Spacing: 2}, func() builder.Expr {
			return builder.ForEach(texts, func(i int, text string) builder.Expr {
				return builder.Seq(
					builder.If(i > 0, func() builder.Expr { return builder.One(view.NewDivider()) }),
					builder.One(view.NewLabel(text)),
				)
			})
		})
	})
}

func TestCapture_TreeStructure(t *testing.T) {
	snap := Capture(paddedRow("a", "bc"))
	root := snap.Tree
	if root == nil {
		t.Fatal("expected tree root")
	}

	var ids []string
	var visit func(n *ViewNode)
	visit = func(n *ViewNode) {
		ids = append(ids, n.ID)
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)

	want := []string{"Box#0", "Stack#0", "Label#0", "Divider#0", "Label#1"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	row := root.Children[0]
	if diff := cmp.Diff([]string{"top+4", "leading+4", "bottom-4", "trailing-4"}, row.Constraints); diff != "" {
		t.Errorf("constraints (-want +got):\n%s", diff)
	}
	wantProps := map[string]any{
		"axis":         "horizontal",
		"distribution": "fill",
		"alignment":    "fill",
		"spacing":      2.0,
	}
	if diff := cmp.Diff(wantProps, row.Properties); diff != "" {
		t.Errorf("stack props (-want +got):\n%s", diff)
	}

	divider := row.Children[1]
	if divider.Properties["axis"] != "horizontal" || divider.Properties["color"] != "#c8c8c8ff" {
		t.Errorf("divider props = %v", divider.Properties)
	}
	label := row.Children[2]
	if diff := cmp.Diff([2]float64{14, 13}, label.Properties["intrinsicSize"]); diff != "" {
		t.Errorf("intrinsic size (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := Capture(paddedRow("x"))
	b := Capture(paddedRow("x"))
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := Capture(paddedRow("x"))
	b := Capture(paddedRow("x", "y"))
	diff := a.Diff(b)
	if diff == "" {
		t.Fatal("expected diff for different snapshots")
	}
	if !strings.HasPrefix(diff, "--- expected\n+++ actual\n") {
		t.Errorf("unexpected diff header:\n%s", diff)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	snap := Capture(paddedRow("a", "b"))
	snap.Data = map[string]any{"count": 2, "tags": []any{"a", "b"}}

	path := filepath.Join(t.TempDir(), "testdata", "row.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// A snapshot read back from disk still matches.
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := snap.Diff(loaded); diff != "" {
		t.Errorf("round trip changed the snapshot:\n%s", diff)
	}
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	snap := Capture(paddedRow("a"))

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := Capture(paddedRow("a")).UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	Capture(paddedRow("b")).MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateSnapshotsEnv, "1")
	Capture(paddedRow("a")).MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

func TestLoadSnapshot_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil || !strings.Contains(err.Error(), "invalid snapshot JSON") {
		t.Errorf("expected invalid JSON error, got %v", err)
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
