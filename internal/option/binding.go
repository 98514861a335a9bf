package option

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmr-tortoise/rsnc/internal/envfile"
	"github.com/mmr-tortoise/rsnc/internal/model"
)

// Origin tells which source supplied an option's value.
type Origin string

const (
	// OriginFlag means the option was given on the command line.
	OriginFlag Origin = "flag"

	// OriginEnv means the value came from the environment (process or dotenv).
	OriginEnv Origin = "env"

	// OriginDefault means no source supplied a value.
	OriginDefault Origin = "default"
)

// String returns the string representation of Origin.
func (o Origin) String() string {
	return string(o)
}

// Binding ties the option table to a cobra command.
// Create it with Bind before the command executes, then call Parse from
// the command's RunE with the positional arguments cobra passes in.
type Binding struct {
	cmd     *cobra.Command
	origins map[string]Origin
}

// Bind registers the flag options on cmd, limits positional arguments and
// turns every flag parse failure into model.ErrMalformedArguments.
func Bind(cmd *cobra.Command) *Binding {
	flags := cmd.Flags()
	for _, o := range Flags() {
		flags.BoolP(o.Long, o.Short, false, fmt.Sprintf("%s [$%s]", o.Usage, o.EnvVar))
	}

	cmd.Args = ValidatePositionals
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.NewMalformedArguments("", "", err)
	})

	return &Binding{cmd: cmd}
}

// ValidatePositionals is a cobra.PositionalArgs that rejects more than
// MaxPositionals values.
func ValidatePositionals(_ *cobra.Command, args []string) error {
	if len(args) > MaxPositionals {
		return model.NewMalformedArguments(fmt.Sprintf("%q", args[MaxPositionals]),
			fmt.Sprintf("unexpected positional argument (accepts at most %d: PORT IPADDR)", MaxPositionals), nil)
	}
	return nil
}

// Parse layers the parsed flags, the positional args and env into
// RawOptions. For every option an explicit command-line value beats the
// environment variable, which beats the built-in default.
//
// Empty environment values are treated as unset.
func (b *Binding) Parse(args []string, env envfile.Environment) (model.RawOptions, error) {
	var raw model.RawOptions

	if err := ValidatePositionals(b.cmd, args); err != nil {
		return raw, err
	}

	v := viper.New()
	origins := make(map[string]Origin, len(Options))

	// Environment values form the config layer, below flags and overrides
	// and above defaults.
	envValues := make(map[string]any)
	for _, o := range Options {
		origins[o.Name] = OriginDefault
		if val, ok := env.Lookup(o.EnvVar); ok {
			envValues[o.Name] = val
			origins[o.Name] = OriginEnv
		}
	}
	if err := v.MergeConfigMap(envValues); err != nil {
		return raw, fmt.Errorf("failed to layer environment values: %w", err)
	}

	for _, o := range Flags() {
		flag := b.cmd.Flags().Lookup(o.Long)
		v.SetDefault(o.Name, false)
		if err := v.BindPFlag(o.Name, flag); err != nil {
			return raw, fmt.Errorf("failed to bind flag %s: %w", o.Display(), err)
		}
		if flag.Changed {
			origins[o.Name] = OriginFlag
		}
	}

	// Positionals are explicit command-line values: highest precedence.
	// An empty argument is still a value and must parse.
	for i, o := range Positionals() {
		if i < len(args) {
			v.Set(o.Name, args[i])
			origins[o.Name] = OriginFlag
		}
	}

	var err error
	if raw.TCP, err = boolValue(v, TCP, origins[TCP.Name]); err != nil {
		return raw, err
	}
	if raw.UDP, err = boolValue(v, UDP, origins[UDP.Name]); err != nil {
		return raw, err
	}
	if raw.Listen, err = boolValue(v, Listen, origins[Listen.Name]); err != nil {
		return raw, err
	}
	if raw.KeepAccept, err = boolValue(v, KeepAccept, origins[KeepAccept.Name]); err != nil {
		return raw, err
	}

	if origins[Port.Name] != OriginDefault {
		s := cast.ToString(v.Get(Port.Name))
		port, err := ParsePort(s)
		if err != nil {
			return raw, model.NewMalformedArguments(sourceName(Port, origins[Port.Name]),
				fmt.Sprintf("invalid port %q (valid: 0-65535)", s), err)
		}
		raw.Port = &port
	}

	if origins[Address.Name] != OriginDefault {
		addr := cast.ToString(v.Get(Address.Name))
		raw.Address = &addr
	}

	b.origins = origins
	return raw, nil
}

// Origins returns where each option's value came from in the last Parse,
// keyed by option Name. Nil before the first successful Parse.
func (b *Binding) Origins() map[string]Origin {
	if b.origins == nil {
		return nil
	}
	out := make(map[string]Origin, len(b.origins))
	for k, v := range b.origins {
		out[k] = v
	}
	return out
}

// boolValue reads a boolean option from v. Flags arrive as bool, env
// values as strings that must use a recognized boolean spelling.
func boolValue(v *viper.Viper, o Option, origin Origin) (bool, error) {
	raw := v.Get(o.Name)
	if b, ok := raw.(bool); ok {
		return b, nil
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return false, model.NewMalformedArguments(sourceName(o, origin), "unsupported value type", err)
	}
	b, err := ParseBool(s)
	if err != nil {
		return false, model.NewMalformedArguments(sourceName(o, origin), "expected a boolean", err)
	}
	return b, nil
}

// sourceName names the option as the user supplied it, so error messages
// point at the flag or at the environment variable.
func sourceName(o Option, origin Origin) string {
	if origin == OriginEnv {
		return o.EnvVar
	}
	return o.Display()
}
