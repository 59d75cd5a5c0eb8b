// Package main is the entry point for the claude-usage-tracker CLI.
// One binary carries every process role: the background daemon, the
// sandboxed widget renderers, the dashboard and the management commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
