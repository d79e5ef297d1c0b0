package markup

import (
	stderrors "errors"
	"maps"
	"slices"

	"github.com/go-drift/stackui/pkg/core"
	"github.com/go-drift/stackui/pkg/errors"
)

// ErrUnknownKey is wrapped by binding errors that name a key the scope does
// not hold.
var ErrUnknownKey = stderrors.New("unknown data key")

// Scope owns the data of a layout: one live value per key. The key set is
// fixed when the scope is created.
//
// Scope is NOT thread-safe. It must only be accessed from the UI goroutine.
type Scope struct {
	cells map[string]*core.Live[any]
}

// NewScope returns a scope holding a live value for every entry of data.
func NewScope(data map[string]any) *Scope {
	s := &Scope{cells: make(map[string]*core.Live[any], len(data))}
	for key, value := range data {
		s.cells[key] = core.NewLive(value)
	}
	return s
}

// Keys returns the data keys in sorted order.
func (s *Scope) Keys() []string {
	return slices.Sorted(maps.Keys(s.cells))
}

// Value returns the current value of key.
func (s *Scope) Value(key string) (any, bool) {
	cell, ok := s.cells[key]
	if !ok {
		return nil, false
	}
	return cell.Value(), true
}

// Set stores value under key and notifies every list and box bound to it.
func (s *Scope) Set(key string, value any) error {
	cell, ok := s.cells[key]
	if !ok {
		return errors.New("markup.Scope.Set", errors.KindBinding, key, ErrUnknownKey)
	}
	cell.Set(value)
	return nil
}

// Publisher returns the publisher backing key.
func (s *Scope) Publisher(key string) (*core.Publisher[any], error) {
	cell, ok := s.cells[key]
	if !ok {
		return nil, errors.New("markup.Scope.Publisher", errors.KindBinding, key, ErrUnknownKey)
	}
	return cell.Publisher(), nil
}

// Snapshot returns a copy of the current values.
func (s *Scope) Snapshot() map[string]any {
	out := make(map[string]any, len(s.cells))
	for key, cell := range s.cells {
		out[key] = cell.Value()
	}
	return out
}
