package option

import (
	"fmt"
	"strconv"
	"strings"
)

// Option describes one recognized option.
type Option struct {
	// Name is the key used when layering sources. For flags it equals Long.
	Name string

	// Short is the single-character flag form. Empty for positionals.
	Short string

	// Long is the multi-character flag form. Empty for positionals.
	Long string

	// Position is the 1-based positional index. Zero for flags.
	Position int

	// EnvVar is the environment variable used when the option is not given
	// on the command line.
	EnvVar string

	// Usage is the help text.
	Usage string
}

// IsFlag returns true for boolean flags, false for positionals.
func (o Option) IsFlag() bool {
	return o.Position == 0
}

// Display returns how the option is written on the command line,
// e.g. "-t/--tcp" or "PORT".
func (o Option) Display() string {
	if o.IsFlag() {
		return fmt.Sprintf("-%s/--%s", o.Short, o.Long)
	}
	return strings.ToUpper(o.Name)
}

// The recognized options.
var (
	TCP = Option{Name: "tcp", Short: "t", Long: "tcp", EnvVar: "RSNC_TCP",
		Usage: "TCP client or server"}
	UDP = Option{Name: "udp", Short: "u", Long: "udp", EnvVar: "RSNC_UDP",
		Usage: "UDP client or server"}
	Listen = Option{Name: "listen", Short: "l", Long: "listen", EnvVar: "RSNC_LISTEN",
		Usage: "server mode"}
	KeepAccept = Option{Name: "keep-accept", Short: "k", Long: "keep-accept", EnvVar: "RSNC_KEEP_ACCEPT",
		Usage: "keep accepting after the client closes"}
	Port = Option{Name: "port", Position: 1, EnvVar: "RSNC_PORT",
		Usage: "port number"}
	Address = Option{Name: "ipaddr", Position: 2, EnvVar: "RSNC_IPADDR",
		Usage: "IP address"}
)

// Options lists every option, flags first, then positionals in order.
var Options = []Option{TCP, UDP, Listen, KeepAccept, Port, Address}

// MaxPositionals is the number of positional values the command accepts.
const MaxPositionals = 2

// Flags returns the flag options.
func Flags() []Option {
	var out []Option
	for _, o := range Options {
		if o.IsFlag() {
			out = append(out, o)
		}
	}
	return out
}

// Positionals returns the positional options ordered by index.
func Positionals() []Option {
	out := make([]Option, MaxPositionals)
	for _, o := range Options {
		if !o.IsFlag() {
			out[o.Position-1] = o
		}
	}
	return out
}

// Lookup finds an option by Name.
func Lookup(name string) (Option, bool) {
	for _, o := range Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// ParsePort converts s to a port number. Non-numeric values and values
// outside 0-65535 are rejected rather than truncated.
func ParsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}

// ParseBool accepts the usual boolean spellings, case-insensitively:
// true/false, 1/0, t/f, yes/no, y/n, on/off.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
