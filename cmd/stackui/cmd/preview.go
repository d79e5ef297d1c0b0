package cmd

import (
	"fmt"

	"github.com/go-drift/stackui/pkg/view"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Print the view tree of a document",
		Long: `Build a markup document and print its view tree as an indented outline.

Each line describes one view. Pinned views list their edge constants in
brackets. Values from the document's data section can be overridden with
--set; the value is parsed as YAML.

Usage:
  stackui preview layouts/profile.yaml
  stackui preview layouts/profile.yaml --set 'tags=[a, b]' --set compact=true`,
		Usage: "stackui preview <document> [--set key=value]...",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	usage := "stackui preview <document> [--set key=value]..."
	la, rest, err := parseLayoutArgs(args, usage)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unknown flag %q\n\nUsage: %s", rest[0], usage)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	layout, err := buildLayout(la, cfg)
	if err != nil {
		return err
	}
	defer layout.Dispose()

	fmt.Fprint(stdout, view.FormatTree(layout.Root))
	return nil
}
