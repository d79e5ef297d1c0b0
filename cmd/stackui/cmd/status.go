package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show project status",
		Long: `Show the resolved project configuration.

Displays the project name and module, the stack defaults applied to markup
documents, and the snapshots found in the snapshot directory.`,
		Usage: "stackui status",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q\n\nUsage: stackui status", args[0])
	}
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	module := cfg.ModulePath
	if module == "" {
		module = "(no go.mod)"
	}
	file := cfg.File
	if file == "" {
		file = "(none)"
	}

	fmt.Fprintf(stdout, "Project: %s (%s)\n", cfg.ProjectName, module)
	fmt.Fprintf(stdout, "Root:    %s\n", cfg.Root)
	fmt.Fprintf(stdout, "Config:  %s\n", file)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Defaults:")
	fmt.Fprintf(stdout, "  %-14s %s\n", "distribution:", cfg.Defaults.Distribution)
	fmt.Fprintf(stdout, "  %-14s %s\n", "alignment:", cfg.Defaults.Alignment)
	fmt.Fprintf(stdout, "  %-14s %g\n", "spacing:", cfg.Defaults.Spacing)
	fmt.Fprintln(stdout)

	snapshots, err := filepath.Glob(filepath.Join(cfg.SnapshotDir, "*.snapshot.json"))
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.SnapshotDir); os.IsNotExist(err) {
		fmt.Fprintf(stdout, "Snapshots: %s (missing)\n", cfg.SnapshotDir)
		return nil
	}
	fmt.Fprintf(stdout, "Snapshots: %s\n", cfg.SnapshotDir)
	for _, s := range snapshots {
		fmt.Fprintf(stdout, "  %s\n", strings.TrimSuffix(filepath.Base(s), ".snapshot.json"))
	}
	return nil
}
