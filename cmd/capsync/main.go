// Package main provides the entry point for the capsync CLI tool.
package main

import (
	"github.com/campusmedia/capsync/cmd/capsync/cmd"
)

// Version information populated by the build system.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
