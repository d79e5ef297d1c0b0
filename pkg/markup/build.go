package markup

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/core"
	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/stack"
	"github.com/go-drift/stackui/pkg/view"
)

type disposer interface {
	Dispose()
}

func disposeAll(ds []disposer) {
	for _, d := range ds {
		d.Dispose()
	}
}

// Layout is a built document: the root view and the scope its bindings
// follow.
type Layout struct {
	Name  string
	Root  view.View
	Scope *Scope

	bindings []disposer
}

// Dispose cancels every binding of the layout. The views stay as they are.
func (l *Layout) Dispose() {
	disposeAll(l.bindings)
	l.bindings = nil
}

// Build creates the view tree described by doc. Values come from scope, or
// from doc.Data when scope is nil. Stack parameters a node leaves unset take
// their value from defaults.
//
// Errors found while building are returned as *errors.StackError. Errors in
// list templates surface on every rebuild instead, as a *errors.BuildError
// reported to the error handler.
func Build(doc *Document, scope *Scope, defaults stack.Config) (*Layout, error) {
	if scope == nil {
		scope = NewScope(doc.Data)
	}
	b := &layoutBuilder{scope: scope, defaults: defaults}
	root, err := b.view(&doc.Root, env{scope: scope})
	if err != nil {
		disposeAll(b.bindings)
		return nil, err
	}
	return &Layout{Name: doc.Name, Root: root, Scope: scope, bindings: b.bindings}, nil
}

type layoutBuilder struct {
	scope    *Scope
	defaults stack.Config
	bindings []disposer
}

func (b *layoutBuilder) track(d disposer) {
	b.bindings = append(b.bindings, d)
}

func (b *layoutBuilder) config(a Arrangement) stack.Config {
	cfg := b.defaults
	if a.Distribution != nil {
		cfg.Distribution = *a.Distribution
	}
	if a.Alignment != nil {
		cfg.Alignment = *a.Alignment
	}
	if a.Spacing != nil {
		cfg.Spacing = *a.Spacing
	}
	return cfg
}

func (b *layoutBuilder) exprs(nodes []Node, e env) (builder.Expr, error) {
	parts := make([]builder.Expr, 0, len(nodes))
	for i := range nodes {
		x, err := b.expr(&nodes[i], e)
		if err != nil {
			return builder.Expr{}, err
		}
		parts = append(parts, x)
	}
	return builder.Seq(parts...), nil
}

func (b *layoutBuilder) expr(n *Node, e env) (builder.Expr, error) {
	switch n.Kind {
	case NodeIf:
		cond, err := e.condition(n.If.Cond)
		if err != nil {
			return builder.Expr{}, err
		}
		var branchErr error
		branch := func(nodes []Node) func() builder.Expr {
			return func() builder.Expr {
				x, err := b.exprs(nodes, e)
				branchErr = err
				return x
			}
		}
		var x builder.Expr
		if n.If.Else == nil {
			x = builder.If(cond, branch(n.If.Then))
		} else {
			x = builder.IfElse(cond, branch(n.If.Then), branch(n.If.Else))
		}
		return x, branchErr

	case NodeForEach:
		v, err := e.lookup(n.ForEach.Key)
		if err != nil {
			return builder.Expr{}, err
		}
		list, err := items(n.ForEach.Key, v)
		if err != nil {
			return builder.Expr{}, err
		}
		return b.repeat(list, &n.ForEach.Template, e)

	default:
		v, err := b.view(n, e)
		if err != nil {
			return builder.Expr{}, err
		}
		return builder.One(v), nil
	}
}

func (b *layoutBuilder) repeat(list []any, template *Node, e env) (builder.Expr, error) {
	var loopErr error
	x := builder.ForEach(list, func(i int, item any) builder.Expr {
		if loopErr != nil {
			return builder.Expr{}
		}
		x, err := b.expr(template, e.withItem(i, item))
		loopErr = err
		return x
	})
	return x, loopErr
}

func (b *layoutBuilder) view(n *Node, e env) (view.View, error) {
	switch n.Kind {
	case NodeLabel:
		text, err := e.expand(n.Text)
		if err != nil {
			return nil, err
		}
		return view.NewLabel(text), nil

	case NodeSpacer:
		s := view.NewSpacer()
		s.Length = n.Spacer.Length
		return s, nil

	case NodeDivider:
		d := view.NewDivider()
		if n.Divider.Thickness > 0 {
			d.Thickness = n.Divider.Thickness
		}
		if n.Divider.Color != "" {
			c, err := ParseColor(n.Divider.Color)
			if err != nil {
				return nil, errors.New("markup.Build", errors.KindParsing, "", fmt.Errorf("line %d: %w", n.Line, err))
			}
			d.Color = c
		}
		return d, nil

	case NodeColor:
		return view.NewColorBox(n.Fill), nil

	case NodeVStack, NodeHStack, NodeVScroll, NodeHScroll:
		content, err := b.exprs(n.Stack.Children, e)
		if err != nil {
			return nil, err
		}
		cfg := b.config(n.Stack.Arrangement)
		fn := func() builder.Expr { return content }
		switch n.Kind {
		case NodeVStack:
			return stack.NewVStack(cfg, fn), nil
		case NodeHStack:
			return stack.NewHStack(cfg, fn), nil
		case NodeVScroll:
			return stack.NewVScrollStack(cfg, fn), nil
		default:
			return stack.NewHScrollStack(cfg, fn), nil
		}

	case NodeVList, NodeHList:
		pub, err := b.scope.Publisher(n.List.Bind)
		if err != nil {
			return nil, err
		}
		lb := &listBinding{}
		content := b.listContent(n.List, e, lb)
		cfg := b.config(n.List.Arrangement)
		if n.Kind == NodeVList {
			lb.list = stack.NewVList(cfg, pub, content)
		} else {
			lb.list = stack.NewHList(cfg, pub, content)
		}
		b.track(lb)
		return lb.list, nil

	case NodeBox:
		return b.box(n.Box, e)

	case NodeIf, NodeForEach:
		return nil, errors.New("markup.Build", errors.KindParsing, "",
			fmt.Errorf("line %d: %s node must be placed inside a stack", n.Line, n.Kind))
	}
	return nil, errors.New("markup.Build", errors.KindParsing, "",
		fmt.Errorf("line %d: invalid node", n.Line))
}

func (b *layoutBuilder) box(spec *BoxSpec, e env) (view.View, error) {
	var child view.View
	if spec.Child != nil {
		v, err := b.view(spec.Child, e)
		if err != nil {
			return nil, err
		}
		child = v
	}
	content := func() view.View { return child }

	key := spec.Padding.Bind
	if key == "" {
		return stack.NewBox(spec.Padding.Insets, content), nil
	}
	pub, err := b.scope.Publisher(key)
	if err != nil {
		return nil, err
	}
	if v, ok := pub.LastValue(); ok {
		if _, err := insets(key, v); err != nil {
			return nil, err
		}
	}

	padding := core.NewPublisher[view.EdgeInsets]()
	cancel := pub.Subscribe(func(v any) {
		in, err := insets(key, v)
		if err != nil {
			report(err)
			return
		}
		padding.Update(in)
	})
	box := stack.NewBoundBox(padding, content)
	b.track(box)
	b.track(cancelFunc(cancel))
	return box, nil
}

// listBinding owns a list and the bindings created by its current
// generation of children, which are cancelled before every rebuild.
type listBinding struct {
	list     disposableView
	children []disposer
}

type disposableView interface {
	view.View
	Dispose()
}

func (l *listBinding) Dispose() {
	if l.list != nil {
		l.list.Dispose()
	}
	disposeAll(l.children)
	l.children = nil
}

func (b *layoutBuilder) listContent(spec *ListSpec, e env, lb *listBinding) func(any) builder.Expr {
	return func(v any) builder.Expr {
		disposeAll(lb.children)
		sub := &layoutBuilder{scope: b.scope, defaults: b.defaults}
		defer func() { lb.children = sub.bindings }()

		list, err := items(spec.Bind, v)
		if err != nil {
			panic(err)
		}
		x, err := sub.repeat(list, spec.Template, e)
		if err != nil {
			panic(err)
		}
		return x
	}
}

type cancelFunc func()

func (f cancelFunc) Dispose() { f() }

func report(err error) {
	var se *errors.StackError
	if stderrors.As(err, &se) {
		errors.Report(se)
		return
	}
	errors.Report(&errors.StackError{Op: "markup", Kind: errors.KindBinding, Err: err})
}
