package core

// Live holds a value together with a Publisher that always carries the same
// value. It replaces field assignment with Set, so every mutation is published.
//
// Live is NOT thread-safe. It must only be accessed from the UI goroutine.
//
// Example:
//
//	type profileScreen struct {
//	    tags *core.Live[[]string]
//	}
//
//	s.tags = core.NewLive([]string{"go"})
//	list := stack.NewVList(stack.Config{}, s.tags.Publisher(), func(tags []string) builder.Expr {
//	    return builder.ForEach(tags, func(_ int, tag string) builder.Expr {
//	        return builder.One(view.NewLabel(tag))
//	    })
//	})
//	s.tags.Update(func(tags []string) []string { return append(tags, "ui") })
type Live[T any] struct {
	value T
	pub   Publisher[T]
}

// NewLive creates a Live value and publishes initial, so subscribers that
// arrive later receive it through replay.
func NewLive[T any](initial T) *Live[T] {
	l := &Live[T]{value: initial}
	l.pub.Update(initial)
	return l
}

// Value returns the current value.
func (l *Live[T]) Value() T {
	return l.value
}

// Set stores value and publishes it. Calling Set from a subscriber of l's own
// publisher panics with *errors.ReentrancyError and leaves l unchanged.
func (l *Live[T]) Set(value T) {
	l.pub.guard()
	l.value = value
	l.pub.Update(value)
}

// Update applies a transformation to the current value and publishes the result.
func (l *Live[T]) Update(transform func(T) T) {
	l.Set(transform(l.value))
}

// Publisher returns the publisher paired with this value. Consumers subscribe
// to it; they must not call Update on it directly.
func (l *Live[T]) Publisher() *Publisher[T] {
	return &l.pub
}
