// Package main provides the entry point for the vepdiff CLI tool.
package main

import (
	"github.com/eastgenomics/vepdiff/cmd/vepdiff/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(version, commit)
}
