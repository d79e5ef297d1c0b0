// Package builder turns nested child expressions into the flat, ordered list
// of children a container arranges.
//
// Expressions form a small closed grammar:
//
//	builder.Seq(
//	    builder.One(view.NewLabel("Title")),
//	    builder.If(showSubtitle, func() builder.Expr {
//	        return builder.One(view.NewLabel("Subtitle"))
//	    }),
//	    builder.IfElse(compact,
//	        func() builder.Expr { return builder.One(view.NewDivider()) },
//	        func() builder.Expr { return builder.One(view.NewSpacer()) },
//	    ),
//	    builder.ForEach(items, func(i int, item string) builder.Expr {
//	        return builder.One(view.NewLabel(item))
//	    }),
//	)
//
// [Flatten] walks the tree once and returns the children in declaration
// order. Branches that were not taken are never evaluated.
package builder

import (
	"fmt"

	"github.com/go-drift/stackui/pkg/view"
)

// Kind tags the shape of an Expr.
type Kind uint8

const (
	// KindSequence concatenates its items in order. The zero Expr is an
	// empty sequence.
	KindSequence Kind = iota
	// KindSingle holds exactly one child.
	KindSingle
	// KindOptional holds an expression that may be absent.
	KindOptional
	// KindEither holds the branch a conditional selected.
	KindEither
	// KindRepeated concatenates a variable number of groups, as produced
	// by a loop.
	KindRepeated
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindSingle:
		return "single"
	case KindOptional:
		return "optional"
	case KindEither:
		return "either"
	case KindRepeated:
		return "repeated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expr is a child-producing expression. Build it with the constructors in
// this package; the zero value produces no children.
type Expr struct {
	kind    Kind
	child   Child
	items   []Expr
	present bool
}

// Kind returns the shape of e.
func (e Expr) Kind() Kind {
	return e.kind
}

// One returns an expression producing the single child v.
func One(v view.View) Expr {
	return Expr{kind: KindSingle, child: NewChild(v)}
}

// Views returns a sequence of single children, one per view.
func Views(vs ...view.View) Expr {
	items := make([]Expr, len(vs))
	for i, v := range vs {
		items[i] = One(v)
	}
	return Expr{kind: KindSequence, items: items}
}

// Seq concatenates items in argument order.
func Seq(items ...Expr) Expr {
	return Expr{kind: KindSequence, items: items}
}

// Optional wraps e; when present is false it contributes nothing.
func Optional(e Expr, present bool) Expr {
	if !present {
		return Expr{kind: KindOptional}
	}
	return Expr{kind: KindOptional, items: []Expr{e}, present: true}
}

// None is an absent optional.
func None() Expr {
	return Optional(Expr{}, false)
}

// If evaluates then only when cond holds.
func If(cond bool, then func() Expr) Expr {
	if !cond {
		return None()
	}
	return Optional(then(), true)
}

// Either marks e as the selected branch of a conditional. It contributes e
// unchanged.
func Either(e Expr) Expr {
	return Expr{kind: KindEither, items: []Expr{e}}
}

// IfElse evaluates exactly one of then and otherwise.
func IfElse(cond bool, then, otherwise func() Expr) Expr {
	if cond {
		return Either(then())
	}
	return Either(otherwise())
}

// Repeated concatenates groups in order.
func Repeated(groups ...Expr) Expr {
	return Expr{kind: KindRepeated, items: groups}
}

// ForEach evaluates fn for every item and concatenates the results.
func ForEach[T any](items []T, fn func(i int, item T) Expr) Expr {
	groups := make([]Expr, len(items))
	for i, item := range items {
		groups[i] = fn(i, item)
	}
	return Repeated(groups...)
}
