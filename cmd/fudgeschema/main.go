// Package main provides the fudgeschema CLI.
//
// fudgeschema resolves the types declared in a YAML manifest into Fudge
// message schemas:
//   - resolve: prints the resolved type graph as a tree, YAML, JSON or a dump
//   - check: validates a manifest and reports coded diagnostics
//   - name: applies a naming convention to member names
//   - version: prints build information
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
