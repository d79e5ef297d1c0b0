package core

import (
	"reflect"
	"slices"

	"github.com/go-drift/stackui/pkg/errors"
)

type subscription[T any] struct {
	fn        func(T)
	cancelled bool
}

// Publisher is a single-value publish/subscribe cell with replay-last
// semantics. The zero value is ready to use and holds no value.
//
// Publisher is NOT thread-safe. It must only be accessed from the UI goroutine.
type Publisher[T any] struct {
	last    T
	hasLast bool
	subs    []*subscription[T]

	notifying bool
	depth     int
}

// NewPublisher returns an empty publisher.
func NewPublisher[T any]() *Publisher[T] {
	return &Publisher[T]{}
}

// LastValue returns the most recently published value and whether one exists.
func (p *Publisher[T]) LastValue() (T, bool) {
	return p.last, p.hasLast
}

// Len returns the number of active subscriptions.
func (p *Publisher[T]) Len() int {
	return len(p.subs)
}

// Update stores value and notifies every subscriber in registration order
// before returning.
//
// Subscribers registered while the notification is running are not called
// for this value, except through the replay performed by Subscribe itself.
// Subscribers cancelled while it is running are skipped.
//
// Calling Update on p from one of p's own subscribers panics with
// *errors.ReentrancyError. Updating a different publisher is allowed.
func (p *Publisher[T]) Update(value T) {
	p.guard()
	p.last = value
	p.hasLast = true

	p.notifying = true
	p.depth = 0
	defer func() {
		p.notifying = false
		p.depth = 0
	}()

	// Cancel replaces p.subs rather than editing it in place, so this
	// snapshot stays valid for the whole loop.
	subs := p.subs
	for _, s := range subs {
		if s.cancelled {
			continue
		}
		s.fn(value)
		p.depth++
	}
}

// Subscribe registers fn for future updates. If a value has already been
// published, fn is called with it before Subscribe returns.
//
// Registering the same function twice creates two independent subscriptions.
// The returned function cancels this subscription only; calling it more than
// once has no effect.
func (p *Publisher[T]) Subscribe(fn func(T)) (cancel func()) {
	s := &subscription[T]{fn: fn}
	if p.hasLast {
		fn(p.last)
	}
	p.subs = append(p.subs, s)
	return func() {
		p.cancel(s)
	}
}

func (p *Publisher[T]) cancel(s *subscription[T]) {
	if s.cancelled {
		return
	}
	s.cancelled = true
	p.subs = slices.DeleteFunc(slices.Clone(p.subs), func(other *subscription[T]) bool {
		return other == s
	})
}

// guard panics with *errors.ReentrancyError while p is notifying.
func (p *Publisher[T]) guard() {
	if p.notifying {
		panic(&errors.ReentrancyError{Op: p.op(), Depth: p.depth})
	}
}

func (p *Publisher[T]) op() string {
	return "core.Publisher[" + reflect.TypeFor[T]().String() + "].Update"
}
