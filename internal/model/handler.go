package model

import "fmt"

// ModeHandler is implemented by components that act on a ResolvedConfig.
// It has one method per Mode, so an implementation cannot compile without
// handling every mode, including the port scan mode that nothing selects yet.
type ModeHandler interface {
	TCPClient(cfg ResolvedConfig) error
	UDPClient(cfg ResolvedConfig) error
	TCPServer(cfg ResolvedConfig) error
	UDPServer(cfg ResolvedConfig) error
	PortScan(cfg ResolvedConfig) error
}

// Dispatch routes cfg to the handler method matching cfg.Mode.
func Dispatch(cfg ResolvedConfig, h ModeHandler) error {
	switch cfg.Mode {
	case ModeTCPClient:
		return h.TCPClient(cfg)
	case ModeUDPClient:
		return h.UDPClient(cfg)
	case ModeTCPServer:
		return h.TCPServer(cfg)
	case ModeUDPServer:
		return h.UDPServer(cfg)
	case ModePortScan:
		return h.PortScan(cfg)
	default:
		return fmt.Errorf("dispatch: unknown mode %q", cfg.Mode)
	}
}
