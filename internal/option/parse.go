package option

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/rsnc/internal/envfile"
	"github.com/mmr-tortoise/rsnc/internal/model"
)

// parseArgs parses a complete argument list (without the program name) against
// env using a throwaway command. It is the schema on its own, without the
// CLI's output flags; help and version requests yield zero RawOptions.
func parseArgs(args []string, env envfile.Environment) (model.RawOptions, error) {
	var raw model.RawOptions

	cmd := &cobra.Command{
		Use:           "rsnc",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	b := Bind(cmd)
	cmd.RunE = func(_ *cobra.Command, positional []string) error {
		var err error
		raw, err = b.Parse(positional, env)
		return err
	}

	// cobra falls back to os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	return raw, err
}
