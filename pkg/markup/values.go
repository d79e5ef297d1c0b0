package markup

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/view"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// env resolves names while a template is built. Inside a foreach or list
// template, item and index refer to the innermost loop.
type env struct {
	scope   *Scope
	item    any
	index   int
	hasItem bool
}

func (e env) withItem(index int, item any) env {
	e.item = item
	e.index = index
	e.hasItem = true
	return e
}

// lookup resolves a dotted path such as "title", "item" or "item.name".
func (e env) lookup(path string) (any, error) {
	head, rest, _ := strings.Cut(path, ".")
	var v any
	switch {
	case e.hasItem && head == "item":
		v = e.item
	case e.hasItem && head == "index":
		v = e.index
	default:
		value, ok := e.scope.Value(head)
		if !ok {
			return nil, errors.New("markup.lookup", errors.KindBinding, head, ErrUnknownKey)
		}
		v = value
	}
	for rest != "" {
		var field string
		field, rest, _ = strings.Cut(rest, ".")
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.New("markup.lookup", errors.KindBinding, path,
				fmt.Errorf("cannot select %q from %T", field, v))
		}
		if v, ok = m[field]; !ok {
			return nil, errors.New("markup.lookup", errors.KindBinding, path, ErrUnknownKey)
		}
	}
	return v, nil
}

// expand replaces every {{name}} in text with the value name resolves to.
func (e env) expand(text string) (string, error) {
	var firstErr error
	out := placeholder.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		v, err := e.lookup(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
	return out, firstErr
}

// condition evaluates an if key, honoring a leading "!".
func (e env) condition(cond string) (bool, error) {
	negate := strings.HasPrefix(cond, "!")
	v, err := e.lookup(strings.TrimSpace(strings.TrimPrefix(cond, "!")))
	if err != nil {
		return false, err
	}
	return truthy(v) != negate, nil
}

// truthy reports whether v counts as true in a conditional. Nil, false, zero
// numbers and empty strings, lists and maps are false.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// items converts a list value to a slice. Nil is an empty list.
func items(key string, v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if list, ok := v.([]any); ok {
		return list, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.New("markup.items", errors.KindBinding, key, fmt.Errorf("%T is not a list", v))
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// insets converts a data value to edge insets. It accepts EdgeInsets, a
// number applied to every edge, or a map with top, left, bottom and right.
func insets(key string, v any) (view.EdgeInsets, error) {
	switch in := v.(type) {
	case view.EdgeInsets:
		return in, nil
	case map[string]any:
		var out view.EdgeInsets
		for edge, raw := range in {
			f, ok := number(raw)
			if !ok {
				return view.EdgeInsets{}, errors.New("markup.insets", errors.KindBinding, key,
					fmt.Errorf("malformed insets: %s is %T", edge, raw))
			}
			switch edge {
			case "top":
				out.Top = f
			case "left":
				out.Left = f
			case "bottom":
				out.Bottom = f
			case "right":
				out.Right = f
			default:
				return view.EdgeInsets{}, errors.New("markup.insets", errors.KindBinding, key,
					fmt.Errorf("malformed insets: unknown edge %q", edge))
			}
		}
		return out, nil
	}
	if f, ok := number(v); ok {
		return view.EdgeInsetsAll(f), nil
	}
	return view.EdgeInsets{}, errors.New("markup.insets", errors.KindBinding, key,
		fmt.Errorf("malformed insets: %T", v))
}
