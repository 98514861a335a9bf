// Package resolve turns parsed options into a single operating mode and a
// validated target.
//
// Resolve is a pure function: no I/O, no environment access, no globals.
package resolve

import (
	"github.com/mmr-tortoise/rsnc/internal/model"
)

// Resolve derives the Mode from raw and checks that the target it needs
// is present. Rules, first match wins:
//
//	tcp && udp        → protocol TCP (tie-break)
//	udp, !listen      → UdpClient, needs port and address
//	udp, listen       → UdpServer, needs port
//	tcp or neither    → TcpClient (!listen, needs port and address)
//	                    TcpServer (listen, needs port)
//
// KeepAccept is carried through unchanged. Port scan mode is never
// selected by the current flag set.
func Resolve(raw model.RawOptions) (model.ResolvedConfig, error) {
	mode := deriveMode(raw)

	cfg := model.ResolvedConfig{
		Mode:       mode,
		Port:       raw.Port,
		Address:    raw.Address,
		KeepAccept: raw.KeepAccept,
	}

	if err := checkTarget(cfg); err != nil {
		return model.ResolvedConfig{}, err
	}
	return cfg, nil
}

// deriveMode maps the protocol and listen flags onto a Mode.
// Without either protocol flag the protocol defaults to TCP.
func deriveMode(raw model.RawOptions) model.Mode {
	udp := raw.UDP && !raw.TCP

	switch {
	case udp && !raw.Listen:
		return model.ModeUDPClient
	case udp && raw.Listen:
		return model.ModeUDPServer
	case raw.Listen:
		return model.ModeTCPServer
	default:
		return model.ModeTCPClient
	}
}

// checkTarget verifies the mode has the port (and, for clients, the
// address) it needs. It never fills in a default.
func checkTarget(cfg model.ResolvedConfig) error {
	switch {
	case cfg.Mode.IsServer():
		if cfg.Port == nil {
			return model.NewMissingTarget(cfg.Mode, "a PORT is required to listen")
		}
	case cfg.Mode.IsClient():
		switch {
		case cfg.Port == nil && cfg.Address == nil:
			return model.NewMissingTarget(cfg.Mode, "PORT and IPADDR are required to connect")
		case cfg.Port == nil:
			return model.NewMissingTarget(cfg.Mode, "a PORT is required to connect")
		case cfg.Address == nil || *cfg.Address == "":
			return model.NewMissingTarget(cfg.Mode, "an IPADDR is required to connect")
		}
	}
	return nil
}
