package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	stacktest "github.com/go-drift/stackui/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Write or check a JSON snapshot of a document",
		Long: `Build a markup document and write its JSON snapshot to the project's
snapshot directory (testdata/snapshots unless stackui.yaml says otherwise).

With --check the snapshot is compared against the existing file instead and
the command fails with a diff when they differ.

Flags:
  --check        Compare instead of writing
  --out PATH     Snapshot file to write or compare
  --set K=V      Override a data value (parsed as YAML)`,
		Usage: "stackui snapshot [--check] [--out path] <document> [--set key=value]...",
		Run:   runSnapshot,
	})
}

func runSnapshot(args []string) error {
	usage := "stackui snapshot [--check] [--out path] <document> [--set key=value]..."

	// --out takes a value, so pull it out before the shared parser sees it.
	var out string
	var remaining []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--out" {
			if i+1 >= len(args) {
				return fmt.Errorf("--out requires a path")
			}
			out = args[i+1]
			i++
			continue
		}
		remaining = append(remaining, args[i])
	}

	la, rest, err := parseLayoutArgs(remaining, usage)
	if err != nil {
		return err
	}
	check := false
	for _, flag := range rest {
		switch flag {
		case "--check":
			check = true
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: %s", flag, usage)
		}
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

	snap := stacktest.Capture(layout.Root)
	snap.Name = layout.Name
	snap.Data = layout.Scope.Snapshot()

	if out == "" {
		out = filepath.Join(cfg.SnapshotDir, layout.Name+".snapshot.json")
	}

	if !check {
		if err := snap.UpdateFile(out); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", out)
		fmt.Fprintf(stdout, "wrote %s\n", out)
		return nil
	}

	expected, err := stacktest.LoadSnapshot(out)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot file missing: %s\n\nTo create: stackui snapshot %s", out, la.path)
		}
		return err
	}
	if diff := snap.Diff(expected); diff != "" {
		fmt.Fprint(stdout, diff)
		return fmt.Errorf("snapshot mismatch: %s", out)
	}
	fmt.Fprintf(stdout, "ok %s\n", out)
	return nil
}
