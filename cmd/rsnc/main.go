// Package main is the entry point for the rsnc CLI.
//
// The dotenv file is read before any argument is parsed; everything else
// is delegated to the internal/cli package, which defines the cobra
// command.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"github.com/mmr-tortoise/rsnc/internal/cli"
	"github.com/mmr-tortoise/rsnc/internal/envfile"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	env := cli.LoadEnv(envfile.NewLoader())
	rootCmd := cli.NewRootCommand(env)
	cli.Execute(rootCmd)
}
