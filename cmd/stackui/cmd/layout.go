package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/stackui/cmd/stackui/internal/config"
	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/markup"
)

// layoutArgs are the arguments shared by commands that build a document.
type layoutArgs struct {
	path string
	sets []assignment
}

type assignment struct {
	key   string
	value any
}

// parseSet splits a --set argument of the form key=value. The value is
// decoded as YAML, so numbers, booleans, lists and maps keep their type.
func parseSet(arg string) (assignment, error) {
	key, raw, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return assignment{}, errors.New("cmd.parseSet", errors.KindParsing, arg,
			fmt.Errorf("expected key=value"))
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return assignment{}, errors.New("cmd.parseSet", errors.KindParsing, key, err)
	}
	return assignment{key: key, value: value}, nil
}

// parseLayoutArgs consumes --set flags and the document path. Flags it does
// not know are returned in rest.
func parseLayoutArgs(args []string, usage string) (la layoutArgs, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--set":
			if i+1 >= len(args) {
				return la, nil, fmt.Errorf("--set requires key=value")
			}
			i++
			a, err := parseSet(args[i])
			if err != nil {
				return la, nil, err
			}
			la.sets = append(la.sets, a)
		case strings.HasPrefix(arg, "--set="):
			a, err := parseSet(strings.TrimPrefix(arg, "--set="))
			if err != nil {
				return la, nil, err
			}
			la.sets = append(la.sets, a)
		case strings.HasPrefix(arg, "-"):
			rest = append(rest, arg)
		case la.path == "":
			la.path = arg
		default:
			return la, nil, fmt.Errorf("unexpected argument %q\n\nUsage: %s", arg, usage)
		}
	}
	if la.path == "" {
		return la, nil, fmt.Errorf("document path is required\n\nUsage: %s", usage)
	}
	return la, rest, nil
}

// buildLayout loads the document, applies the --set values to its data and
// builds it with the project defaults.
func buildLayout(la layoutArgs, cfg *config.Resolved) (*markup.Layout, error) {
	doc, err := markup.Load(la.path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded document", "name", doc.Name, "path", la.path, "keys", len(doc.Data))

	scope := markup.NewScope(doc.Data)
	for _, a := range la.sets {
		if err := scope.Set(a.key, a.value); err != nil {
			return nil, err
		}
	}
	return markup.Build(doc, scope, cfg.Defaults)
}

// resolveConfig discovers the project configuration and honours its verbose
// setting.
func resolveConfig() (*config.Resolved, error) {
	cfg, err := config.Discover()
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		enableVerbose()
	}
	slog.Debug("resolved config", "root", cfg.Root, "file", cfg.File)
	return cfg, nil
}
