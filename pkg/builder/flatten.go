package builder

// Flatten evaluates e into its ordered list of children. Order matches
// declaration order exactly; the only entries dropped are absent optionals.
func Flatten(e Expr) []Child {
	return appendFlat(make([]Child, 0, Len(e)), e)
}

func appendFlat(out []Child, e Expr) []Child {
	switch e.kind {
	case KindSingle:
		return append(out, e.child)
	case KindOptional:
		if !e.present {
			return out
		}
	}
	for _, item := range e.items {
		out = appendFlat(out, item)
	}
	return out
}

// Len returns the number of children e flattens to without allocating them.
func Len(e Expr) int {
	switch e.kind {
	case KindSingle:
		return 1
	case KindOptional:
		if !e.present {
			return 0
		}
	}
	n := 0
	for _, item := range e.items {
		n += Len(item)
	}
	return n
}
