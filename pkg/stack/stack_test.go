package stack

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/core"
	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/view"
)

type recordingHandler struct {
	builds []*errors.BuildError
}

func (h *recordingHandler) HandleError(*errors.StackError) {}
func (h *recordingHandler) HandlePanic(*errors.PanicError) {}
func (h *recordingHandler) HandleBuildError(err *errors.BuildError) {
	h.builds = append(h.builds, err)
}

func installHandler(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func labelTexts(views []view.View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		if l, ok := v.(*view.Label); ok {
			out = append(out, l.Text)
			continue
		}
		out = append(out, view.TypeName(v))
	}
	return out
}

func labels(texts ...string) builder.Expr {
	items := make([]builder.Expr, len(texts))
	for i, s := range texts {
		items[i] = builder.One(view.NewLabel(s))
	}
	return builder.Seq(items...)
}

func TestVStack_ArrangesInOrder(t *testing.T) {
	s := NewVStack(Config{Spacing: 4, Alignment: view.AlignmentCenter}, func() builder.Expr {
		return builder.Seq(
			labels("A"),
			builder.If(false, func() builder.Expr { return labels("hidden") }),
			builder.One(view.NewSpacer()),
			labels("B", "C"),
		)
	})

	want := []string{"A", "Spacer", "B", "C"}
	if diff := cmp.Diff(want, labelTexts(s.ArrangedSubviews())); diff != "" {
		t.Errorf("arranged (-want +got):\n%s", diff)
	}
	if s.Axis != view.AxisVertical || s.Spacing != 4 || s.Alignment != view.AlignmentCenter {
		t.Errorf("config not applied: %s", s.Describe())
	}
	for _, v := range s.ArrangedSubviews() {
		if v.Superview() != view.View(s) {
			t.Errorf("%s superview is not the stack", view.Describe(v))
		}
	}
}

func TestHStack_AssignsAxisToDividers(t *testing.T) {
	d := view.NewDivider()
	sp := view.NewSpacer()
	NewHStack(Config{}, func() builder.Expr {
		return builder.Views(view.NewLabel("A"), d, sp)
	})

	if d.Axis() != view.AxisHorizontal {
		t.Errorf("divider axis = %v, want horizontal", d.Axis())
	}
	if sp.Axis() != view.AxisHorizontal {
		t.Errorf("spacer axis = %v, want horizontal", sp.Axis())
	}
}

func TestStack_NilContent(t *testing.T) {
	s := NewHStack(Config{}, nil)
	if n := len(s.ArrangedSubviews()); n != 0 {
		t.Errorf("expected empty stack, got %d children", n)
	}
}

func TestStack_Apply(t *testing.T) {
	s := NewVStack(Config{}, nil).Apply(func(s *Stack) {
		s.Distribution = view.DistributionEqualSpacing
	})
	if got, want := s.Describe(), "VStack distribution=equal_spacing alignment=fill spacing=0"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestNestedStacks(t *testing.T) {
	inner := NewHStack(Config{}, func() builder.Expr { return labels("x", "y") })
	outer := NewVStack(Config{}, func() builder.Expr {
		return builder.Seq(labels("title"), builder.One(inner))
	})

	if inner.Superview() != view.View(outer) {
		t.Fatal("inner stack not attached to outer stack")
	}
	if !view.IsDescendant(inner.ArrangedSubviews()[1], outer) {
		t.Error("grandchild is not a descendant of the outer stack")
	}
}

func TestList_RebuildDetachesOldChildren(t *testing.T) {
	pub := core.NewPublisher[string]()
	a, b := view.NewLabel("A"), view.NewLabel("B")
	c, d := view.NewLabel("C"), view.NewLabel("D")

	l := NewVList(Config{}, pub, func(v string) builder.Expr {
		if v == "X" {
			return builder.Views(c, d)
		}
		return builder.Views(a, b)
	})
	if l.Generation() != 0 || len(l.ArrangedSubviews()) != 0 {
		t.Fatalf("expected an empty list before the first value, got %s", l.Describe())
	}

	pub.Update("initial")
	if diff := cmp.Diff([]string{"A", "B"}, labelTexts(l.ArrangedSubviews())); diff != "" {
		t.Fatalf("initial children (-want +got):\n%s", diff)
	}

	pub.Update("X")
	if diff := cmp.Diff([]string{"C", "D"}, labelTexts(l.ArrangedSubviews())); diff != "" {
		t.Errorf("rebuilt children (-want +got):\n%s", diff)
	}
	if got := len(l.Subviews()); got != 2 {
		t.Errorf("expected 2 subviews, got %d", got)
	}
	for _, old := range []*view.Label{a, b} {
		if old.Superview() != nil {
			t.Errorf("%s still has a superview", old.Text)
		}
		if view.IsDescendant(old, l) {
			t.Errorf("%s is still reachable from the list", old.Text)
		}
	}
	if l.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", l.Generation())
	}
}

func TestList_ReplaysExistingValue(t *testing.T) {
	live := core.NewLive([]string{"go", "ui"})
	l := NewHList(Config{}, live.Publisher(), func(tags []string) builder.Expr {
		return builder.ForEach(tags, func(_ int, tag string) builder.Expr {
			return labels(tag)
		})
	})

	if diff := cmp.Diff([]string{"go", "ui"}, labelTexts(l.ArrangedSubviews())); diff != "" {
		t.Errorf("replayed children (-want +got):\n%s", diff)
	}
	if l.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", l.Generation())
	}

	live.Update(func(tags []string) []string { return append(tags, "stack") })
	if diff := cmp.Diff([]string{"go", "ui", "stack"}, labelTexts(l.ArrangedSubviews())); diff != "" {
		t.Errorf("updated children (-want +got):\n%s", diff)
	}
}

func TestList_IdenticalValueStillRebuilds(t *testing.T) {
	pub := core.NewPublisher[int]()
	calls := 0
	l := NewVList(Config{}, pub, func(int) builder.Expr {
		calls++
		return labels("same")
	})

	pub.Update(1)
	first := l.ArrangedSubviews()[0]
	pub.Update(1)

	if calls != 2 {
		t.Errorf("content evaluated %d times, want 2", calls)
	}
	if l.ArrangedSubviews()[0] == first {
		t.Error("expected a fresh child after rebuilding")
	}
}

func TestList_AxisDependentChildren(t *testing.T) {
	pub := core.NewPublisher[bool]()
	d := view.NewDivider()
	NewHList(Config{}, pub, func(bool) builder.Expr { return builder.One(d) })
	pub.Update(true)

	if d.Axis() != view.AxisHorizontal {
		t.Errorf("divider axis = %v, want horizontal", d.Axis())
	}
}

func TestList_Dispose(t *testing.T) {
	pub := core.NewPublisher[int]()
	l := NewVList(Config{}, pub, func(n int) builder.Expr {
		return builder.ForEach(make([]struct{}, n), func(int, struct{}) builder.Expr {
			return labels("row")
		})
	})
	pub.Update(2)
	l.Dispose()
	l.Dispose()
	pub.Update(5)

	if n := len(l.ArrangedSubviews()); n != 2 {
		t.Errorf("expected children to stay after Dispose, got %d", n)
	}
	if pub.Len() != 0 {
		t.Errorf("expected subscription to be cancelled, %d remain", pub.Len())
	}
	if !l.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}
}

func TestList_ContentPanicReportsBuildError(t *testing.T) {
	h := installHandler(t)
	pub := core.NewPublisher[int]()
	l := NewHList(Config{}, pub, func(n int) builder.Expr {
		if n < 0 {
			panic("negative count")
		}
		return labels("ok")
	})

	pub.Update(1)
	pub.Update(-1)

	if n := len(l.ArrangedSubviews()); n != 0 {
		t.Errorf("expected empty list after panic, got %d children", n)
	}
	if len(h.builds) != 1 {
		t.Fatalf("expected 1 build error, got %d", len(h.builds))
	}
	be := h.builds[0]
	if be.View != "HList" || be.Generation != 2 || be.Recovered != "negative count" {
		t.Errorf("unexpected build error: %+v", be)
	}

	pub.Update(3)
	if diff := cmp.Diff([]string{"ok"}, labelTexts(l.ArrangedSubviews())); diff != "" {
		t.Errorf("recovered children (-want +got):\n%s", diff)
	}
}

func TestList_Describe(t *testing.T) {
	pub := core.NewPublisher[int]()
	l := NewVList(Config{Spacing: 2}, pub, nil)
	pub.Update(0)
	if got, want := l.Describe(), "VList distribution=fill alignment=fill spacing=2 generation=1"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
