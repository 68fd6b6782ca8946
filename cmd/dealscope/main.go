// Package main provides the entry point for the dealscope CLI.
package main

import (
	"github.com/fennecworks/dealscope/cmd/dealscope/cmd"
)

// Version information populated by the build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
