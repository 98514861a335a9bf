// Package cli implements the cobra-based command line of rsnc.
//
// rsnc has a single root command. It resolves flags, positional values,
// environment variables and the dotenv file into one operating mode and
// target, then prints the resolved plan. The network layer that will act
// on the plan consumes model.ResolvedConfig through model.ModeHandler.
package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/rsnc/internal/envfile"
	"github.com/mmr-tortoise/rsnc/internal/model"
	"github.com/mmr-tortoise/rsnc/internal/option"
	"github.com/mmr-tortoise/rsnc/internal/resolve"
)

// Global flag variables of the CLI harness. The option schema flags
// (-t, -u, -l, -k) live in the option package.
var (
	// outputFormat selects how the resolved plan and errors are printed:
	// "text" (default), "json" or "yaml".
	outputFormat string

	// verbose enables debug logging on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// EnvState is the outcome of the dotenv lookup that runs before any
// argument is parsed.
type EnvState struct {
	// Values is the effective environment: dotenv values overlaid by the
	// process environment.
	Values envfile.Environment

	// Path is the dotenv file that was read, or "" when none exists.
	Path string

	// Err is set when a dotenv file exists but could not be read.
	// It is logged as a warning and never fails the command.
	Err error
}

// LoadEnv runs the dotenv search of loader.
func LoadEnv(loader *envfile.Loader) EnvState {
	values, path, err := loader.Load()
	return EnvState{Values: values, Path: path, Err: err}
}

// NewRootCommand creates and configures the root cobra command.
// env must be loaded before the command parses its arguments.
func NewRootCommand(env EnvState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rsnc [-t|--tcp] [-u|--udp] [-l|--listen] [-k|--keep-accept] [PORT] [IPADDR]",
		Short: "netcat-style TCP/UDP client and server",
		Long: `rsnc acts as a TCP or UDP client or server depending on its flags.

Without -t or -u the protocol is TCP. Without -l rsnc connects to
IPADDR:PORT; with -l it listens on PORT on all interfaces.

Every flag and positional can also be set through its environment
variable. Variables are read from the process environment and from
~/.rsncenv, or ./.env when ~/.rsncenv does not exist. Variables already
set in the process are never replaced by the file.

Examples:
  rsnc 80 example.com
  rsnc -u 53 127.0.0.1
  rsnc -l -k 8080
  RSNC_UDP=true rsnc -l 54321 --output json`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// Usage is only shown for -h/--help.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them as text or JSON.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	binding := option.Bind(rootCmd)

	rootCmd.Flags().StringVar(&outputFormat, "output", formatText,
		"Output format: text, json, yaml")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runRoot(cmd, binding, env, args)
	}

	return rootCmd
}

// runRoot is the main logic of the root command: parse, resolve, report.
func runRoot(cmd *cobra.Command, binding *option.Binding, env EnvState, args []string) error {
	// Step 1: Validate the harness flags before touching the schema.
	if !isValidFormat(outputFormat) {
		return model.WrapCLIError(model.ExitMalformedArguments, "invalid arguments",
			model.NewMalformedArguments("--output",
				fmt.Sprintf("unknown format %q (valid: text, json, yaml)", outputFormat), nil))
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)

	// Step 2: Report the dotenv lookup. A broken file is not fatal.
	switch {
	case env.Err != nil:
		logger.Warn("ignoring env file", "path", env.Path, "err", env.Err)
	case env.Path != "":
		logger.Debug("loaded env file", "path", env.Path)
	default:
		logger.Debug("no env file found")
	}

	// Step 3: Layer flags, positionals and environment into RawOptions.
	raw, err := binding.Parse(args, env.Values)
	if err != nil {
		return model.WrapCLIError(model.ExitCodeFor(err), "invalid arguments", err)
	}
	origins := binding.Origins()
	for _, name := range slices.Sorted(maps.Keys(origins)) {
		o, ok := option.Lookup(name)
		if !ok {
			continue
		}
		logger.Debug("option", "name", o.Display(), "env", o.EnvVar, "origin", origins[name])
	}

	// Step 4: Derive the mode and validate the target.
	cfg, err := resolve.Resolve(raw)
	if err != nil {
		return model.WrapCLIError(model.ExitCodeFor(err), "cannot resolve target", err)
	}
	for _, note := range resolve.Notes(raw, cfg) {
		logger.Debug(note)
	}
	logger.Debug("resolved", "mode", cfg.Mode, "endpoint", cfg.Endpoint(), "keep-accept", cfg.KeepAccept)

	// Step 5: Hand the config to the mode handler and print the plan.
	p := &planner{}
	if err := model.Dispatch(cfg, p); err != nil {
		return err
	}
	return printPlan(cmd.OutOrStdout(), outputFormat, p.plan)
}

// Execute runs the root command and exits with the matching exit code.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if code := run(rootCmd, os.Stderr); code != model.ExitSuccess {
		os.Exit(int(code))
	}
}

// run executes rootCmd, prints any error to stderr and returns the exit
// code. CLIError types carry their own exit codes; configuration errors
// map through model.ExitCodeFor; anything else is a general error.
func run(rootCmd *cobra.Command, stderr io.Writer) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(stderr, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(stderr, err.Error(), nil)
	return model.ExitCodeFor(err)
}

// newLogger creates the stderr logger. Debug output is enabled by --verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "rsnc",
		Level:  log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// IsJSONOutput returns whether --output json is set.
func IsJSONOutput() bool {
	return outputFormat == formatJSON
}
