// Command stackui previews and snapshots markup layouts.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/stackui/cmd/stackui/cmd"
	"github.com/go-drift/stackui/pkg/errors"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{Op: "main", Value: r, StackTrace: errors.CaptureStack()})
			code = 2
		}
	}()
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
