package testing

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-json"

	"github.com/go-drift/stackui/pkg/view"
)

// UpdateSnapshotsEnv is the environment variable that switches MatchesFile to
// rewriting golden files.
const UpdateSnapshotsEnv = "STACKUI_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the structure of a view tree and, for markup layouts,
// the data it was built from.
type Snapshot struct {
	Name string         `json:"name,omitempty"`
	Tree *ViewNode      `json:"tree"`
	Data map[string]any `json:"data,omitempty"`
}

// ViewNode represents a node in the serialized view tree.
type ViewNode struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Properties  map[string]any `json:"props,omitempty"`
	Constraints []string       `json:"constraints,omitempty"`
	Children    []*ViewNode    `json:"children,omitempty"`
}

// propertyWhitelist defines which exported fields to serialize per view type.
// Promoted fields count, so stacks report their StackView parameters.
var propertyWhitelist = map[string][]string{
	"Label":      {"Text"},
	"Spacer":     {"Length"},
	"Divider":    {"Thickness", "Color"},
	"ColorBox":   {"Color"},
	"StackView":  {"Axis", "Distribution", "Alignment", "Spacing"},
	"Stack":      {"Axis", "Distribution", "Alignment", "Spacing"},
	"List":       {"Axis", "Distribution", "Alignment", "Spacing"},
	"ScrollView": {"ShowsHorizontalIndicator", "ShowsVerticalIndicator", "Bounces"},
}

// Capture serializes the tree rooted at root.
func Capture(root view.View) *Snapshot {
	return &Snapshot{Tree: captureViewNode(root, &typeCounter{})}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When STACKUI_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := LoadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.MarshalIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := s.MarshalIndent()
	b, _ := other.MarshalIndent()
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// MarshalIndent returns the canonical JSON encoding used for golden files.
func (s *Snapshot) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot reads a golden file written by UpdateFile.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// --- Internal ---

// typeCounter assigns stable IDs like "Label#0", "Label#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureViewNode(v view.View, counter *typeCounter) *ViewNode {
	typeName := view.TypeName(v)
	node := &ViewNode{
		ID:   counter.next(typeName),
		Type: typeName,
	}
	if props := captureProperties(v.Self(), typeName); len(props) > 0 {
		node.Properties = props
	}
	for _, c := range v.Constraints() {
		node.Constraints = append(node.Constraints, c.Describe())
	}
	for _, child := range v.Subviews() {
		node.Children = append(node.Children, captureViewNode(child, counter))
	}
	return node
}

func captureProperties(v view.View, typeName string) map[string]any {
	props := make(map[string]any)

	if whitelist, ok := propertyWhitelist[typeName]; ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		for _, fieldName := range whitelist {
			field := rv.FieldByName(fieldName)
			if !field.IsValid() || !field.CanInterface() {
				continue
			}
			if val := serializeFieldValue(field); val != nil {
				props[lowerFirst(fieldName)] = val
			}
		}
	}

	// State that is only reachable through methods.
	if a, ok := v.(view.Axial); ok {
		props["axis"] = a.Axis().String()
	}
	if b, ok := v.(interface{ Insets() view.EdgeInsets }); ok {
		in := b.Insets()
		props["insets"] = map[string]any{
			"top": round2(in.Top), "left": round2(in.Left),
			"bottom": round2(in.Bottom), "right": round2(in.Right),
		}
	}
	if l, ok := v.(interface{ Generation() int }); ok {
		props["generation"] = l.Generation()
	}
	if l, ok := v.(*view.Label); ok {
		size := l.IntrinsicSize()
		props["intrinsicSize"] = [2]float64{size.Width, size.Height}
	}

	if len(props) == 0 {
		return nil
	}
	return props
}

func serializeFieldValue(v reflect.Value) any {
	if s, ok := v.Interface().(fmt.Stringer); ok && v.Kind() != reflect.Struct {
		return s.String()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Float32, reflect.Float64:
		return round2(v.Float())
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Struct:
		if c, ok := v.Interface().(color.NRGBA); ok {
			return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
		}
		return fmt.Sprintf("%v", v.Interface())
	default:
		return nil
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
