package core

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/stackui/pkg/errors"
)

func TestPublisher_ZeroValueHasNoValue(t *testing.T) {
	var p Publisher[int]
	if _, ok := p.LastValue(); ok {
		t.Error("expected zero Publisher to hold no value")
	}

	called := false
	p.Subscribe(func(int) { called = true })
	if called {
		t.Error("subscribing to an empty publisher must not call the subscriber")
	}
}

func TestPublisher_SubscriberBeforeUpdatesSeesAll(t *testing.T) {
	p := NewPublisher[int]()
	var got []int
	p.Subscribe(func(v int) { got = append(got, v) })

	for _, v := range []int{3, 1, 4, 1, 5} {
		p.Update(v)
	}

	if diff := cmp.Diff([]int{3, 1, 4, 1, 5}, got); diff != "" {
		t.Errorf("observed values mismatch (-want +got):\n%s", diff)
	}
}

func TestPublisher_LateSubscriberOnlySeesLatest(t *testing.T) {
	p := NewPublisher[string]()
	p.Update("a")
	p.Update("b")
	p.Update("c")

	var got []string
	p.Subscribe(func(v string) { got = append(got, v) })

	if diff := cmp.Diff([]string{"c"}, got); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}
}

func TestPublisher_ReplayHappensBeforeSubscribeReturns(t *testing.T) {
	p := NewPublisher[int]()
	p.Update(7)

	calls := 0
	p.Subscribe(func(v int) {
		calls++
		if v != 7 {
			t.Errorf("replayed %d, want 7", v)
		}
	})
	if calls != 1 {
		t.Fatalf("expected exactly one replay call, got %d", calls)
	}

	p.Update(8)
	if calls != 2 {
		t.Errorf("expected a second call after Update, got %d calls", calls)
	}
}

func TestPublisher_Scenario(t *testing.T) {
	p := NewPublisher[int]()
	var s1, s2 []int

	p.Subscribe(func(v int) { s1 = append(s1, v) })
	p.Update(1)
	if diff := cmp.Diff([]int{1}, s1); diff != "" {
		t.Fatalf("s1 after first update (-want +got):\n%s", diff)
	}

	p.Subscribe(func(v int) { s2 = append(s2, v) })
	if diff := cmp.Diff([]int{1}, s2); diff != "" {
		t.Fatalf("s2 replay (-want +got):\n%s", diff)
	}

	p.Update(2)
	if diff := cmp.Diff([]int{1, 2}, s1); diff != "" {
		t.Errorf("s1 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, s2); diff != "" {
		t.Errorf("s2 (-want +got):\n%s", diff)
	}
}

func TestPublisher_RegistrationOrder(t *testing.T) {
	p := NewPublisher[int]()
	var order []string
	p.Subscribe(func(int) { order = append(order, "first") })
	p.Subscribe(func(int) { order = append(order, "second") })
	p.Subscribe(func(int) { order = append(order, "third") })

	p.Update(0)

	if diff := cmp.Diff([]string{"first", "second", "third"}, order); diff != "" {
		t.Errorf("fan-out order (-want +got):\n%s", diff)
	}
}

func TestPublisher_DuplicateSubscriberFiresTwice(t *testing.T) {
	p := NewPublisher[int]()
	calls := 0
	fn := func(int) { calls++ }
	p.Subscribe(fn)
	p.Subscribe(fn)

	p.Update(1)

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPublisher_Cancel(t *testing.T) {
	p := NewPublisher[int]()
	var a, b []int
	cancelA := p.Subscribe(func(v int) { a = append(a, v) })
	p.Subscribe(func(v int) { b = append(b, v) })

	p.Update(1)
	cancelA()
	cancelA()
	p.Update(2)

	if diff := cmp.Diff([]int{1}, a); diff != "" {
		t.Errorf("cancelled subscriber (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, b); diff != "" {
		t.Errorf("remaining subscriber (-want +got):\n%s", diff)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPublisher_CancelOneOfDuplicates(t *testing.T) {
	p := NewPublisher[int]()
	calls := 0
	fn := func(int) { calls++ }
	cancel := p.Subscribe(fn)
	p.Subscribe(fn)

	cancel()
	p.Update(1)

	if calls != 1 {
		t.Errorf("expected the surviving duplicate to fire once, got %d calls", calls)
	}
}

func TestPublisher_CancelDuringFanOut(t *testing.T) {
	p := NewPublisher[int]()
	var cancelSecond func()
	secondCalls := 0

	p.Subscribe(func(int) { cancelSecond() })
	cancelSecond = p.Subscribe(func(int) { secondCalls++ })

	p.Update(1)

	if secondCalls != 0 {
		t.Errorf("subscriber cancelled mid fan-out was called %d times", secondCalls)
	}
}

func TestPublisher_SubscribeDuringFanOut(t *testing.T) {
	p := NewPublisher[int]()
	var late []int
	subscribed := false

	p.Subscribe(func(int) {
		if subscribed {
			return
		}
		subscribed = true
		p.Subscribe(func(v int) { late = append(late, v) })
	})

	p.Update(1)
	if diff := cmp.Diff([]int{1}, late); diff != "" {
		t.Fatalf("late subscriber should only see the replay (-want +got):\n%s", diff)
	}

	p.Update(2)
	if diff := cmp.Diff([]int{1, 2}, late); diff != "" {
		t.Errorf("late subscriber after next update (-want +got):\n%s", diff)
	}
}

func TestPublisher_ReentrantUpdatePanics(t *testing.T) {
	p := NewPublisher[int]()
	p.Subscribe(func(v int) {})
	p.Subscribe(func(v int) {
		if v < 10 {
			p.Update(v + 1)
		}
	})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected re-entrant Update to panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %T is not an error", r)
		}
		var re *errors.ReentrancyError
		if !stderrors.As(err, &re) {
			t.Fatalf("panic value %v is not a ReentrancyError", err)
		}
		if re.Depth != 1 {
			t.Errorf("Depth = %d, want 1", re.Depth)
		}
		if re.Op != "core.Publisher[int].Update" {
			t.Errorf("Op = %q", re.Op)
		}

		// The publisher must be usable again after the panic unwound.
		var got []int
		p.Subscribe(func(v int) { got = append(got, v) })
		if diff := cmp.Diff([]int{0}, got); diff != "" {
			t.Errorf("replay after panic (-want +got):\n%s", diff)
		}
	}()

	p.Update(0)
}

func TestPublisher_UpdateOtherPublisherFromSubscriber(t *testing.T) {
	src := NewPublisher[int]()
	dst := NewPublisher[int]()
	var got []int

	dst.Subscribe(func(v int) { got = append(got, v) })
	src.Subscribe(func(v int) { dst.Update(v * 10) })

	src.Update(1)
	src.Update(2)

	if diff := cmp.Diff([]int{10, 20}, got); diff != "" {
		t.Errorf("chained values (-want +got):\n%s", diff)
	}
}
