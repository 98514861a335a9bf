package model

import (
	"net"
	"strconv"
)

// Mode is the single operating behavior rsnc will execute.
// It is always derived by the resolver, never set directly by the user.
type Mode string

const (
	// ModeTCPClient connects to a remote TCP endpoint.
	ModeTCPClient Mode = "tcp-client"

	// ModeUDPClient sends datagrams to a remote UDP endpoint.
	ModeUDPClient Mode = "udp-client"

	// ModeTCPServer listens for TCP connections on all interfaces.
	ModeTCPServer Mode = "tcp-server"

	// ModeUDPServer receives datagrams on all interfaces.
	ModeUDPServer Mode = "udp-server"

	// ModePortScan probes a range of ports on a remote host.
	// No flag selects it yet.
	ModePortScan Mode = "port-scan"
)

// modes lists every Mode in declaration order.
var modes = []Mode{ModeTCPClient, ModeUDPClient, ModeTCPServer, ModeUDPServer, ModePortScan}

// String returns the string representation of Mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid checks whether the Mode value is one of the predefined modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeTCPClient, ModeUDPClient, ModeTCPServer, ModeUDPServer, ModePortScan:
		return true
	default:
		return false
	}
}

// IsServer returns true for the listening modes.
func (m Mode) IsServer() bool {
	return m == ModeTCPServer || m == ModeUDPServer
}

// IsClient returns true for the connecting modes.
func (m Mode) IsClient() bool {
	return m == ModeTCPClient || m == ModeUDPClient
}

// Protocol returns the transport protocol of the mode ("tcp" or "udp").
// Port scanning is TCP based.
func (m Mode) Protocol() string {
	switch m {
	case ModeUDPClient, ModeUDPServer:
		return "udp"
	default:
		return "tcp"
	}
}

// RawOptions is the direct result of parsing the command line.
//
// Each field already reflects the precedence explicit flag > environment
// variable > built-in default. A nil pointer means the value was not
// supplied by any source.
type RawOptions struct {
	TCP        bool    `json:"tcp" yaml:"tcp"`
	UDP        bool    `json:"udp" yaml:"udp"`
	Listen     bool    `json:"listen" yaml:"listen"`
	KeepAccept bool    `json:"keepAccept" yaml:"keepAccept"`
	Port       *uint16 `json:"port,omitempty" yaml:"port,omitempty"`
	Address    *string `json:"address,omitempty" yaml:"address,omitempty"`
}

// ResolvedConfig is the validated configuration handed to the network
// layer. It is the sole handoff point out of the configuration core.
//
// For server modes Address is carried for diagnostics only; servers bind
// all interfaces. For client modes both Port and Address are present.
type ResolvedConfig struct {
	Mode       Mode    `json:"mode" yaml:"mode"`
	Port       *uint16 `json:"port,omitempty" yaml:"port,omitempty"`
	Address    *string `json:"address,omitempty" yaml:"address,omitempty"`
	KeepAccept bool    `json:"keepAccept" yaml:"keepAccept"`
}

// HasTarget reports whether the config carries everything its mode needs
// to open a socket: a port for servers, a port and an address otherwise.
func (c ResolvedConfig) HasTarget() bool {
	if c.Port == nil {
		return false
	}
	if c.Mode.IsServer() {
		return true
	}
	return c.Address != nil && *c.Address != ""
}

// Endpoint returns the socket address for the mode: ":port" for servers
// and "address:port" for clients. Returns "" when the target is incomplete.
func (c ResolvedConfig) Endpoint() string {
	if !c.HasTarget() {
		return ""
	}
	port := strconv.FormatUint(uint64(*c.Port), 10)
	if c.Mode.IsServer() {
		return ":" + port
	}
	return net.JoinHostPort(*c.Address, port)
}

// Uint16 returns a pointer to v. Convenience for building optional ports.
func Uint16(v uint16) *uint16 {
	return &v
}

// String returns a pointer to s. Convenience for building optional addresses.
func String(s string) *string {
	return &s
}
