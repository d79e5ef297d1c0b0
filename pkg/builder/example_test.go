package builder_test

import (
	"fmt"

	"github.com/go-drift/stackui/pkg/builder"
	"github.com/go-drift/stackui/pkg/view"
)

func ExampleFlatten() {
	loggedIn := false
	items := []string{"Inbox", "Archive"}

	children := builder.Flatten(builder.Seq(
		builder.One(view.NewLabel("Mail")),
		builder.IfElse(loggedIn,
			func() builder.Expr { return builder.One(view.NewLabel("Sign out")) },
			func() builder.Expr { return builder.One(view.NewLabel("Sign in")) },
		),
		builder.One(view.NewDivider()),
		builder.ForEach(items, func(_ int, item string) builder.Expr {
			return builder.One(view.NewLabel(item))
		}),
	))

	for _, c := range children {
		fmt.Println(view.Describe(c.View), c.Role)
	}

	// Output:
	// Label "Mail" plain
	// Label "Sign in" plain
	// Divider axis=vertical thickness=1 axis_dependent
	// Label "Inbox" plain
	// Label "Archive" plain
}
