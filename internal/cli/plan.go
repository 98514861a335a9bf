package cli

import (
	"fmt"

	"github.com/mmr-tortoise/rsnc/internal/model"
)

// plan is the printable summary of a resolved configuration.
type plan struct {
	Mode       string  `json:"mode" yaml:"mode"`
	Protocol   string  `json:"protocol" yaml:"protocol"`
	Endpoint   string  `json:"endpoint" yaml:"endpoint"`
	Port       *uint16 `json:"port,omitempty" yaml:"port,omitempty"`
	Address    *string `json:"address,omitempty" yaml:"address,omitempty"`
	KeepAccept bool    `json:"keepAccept" yaml:"keepAccept"`
	Action     string  `json:"action" yaml:"action"`
}

// planner implements model.ModeHandler by describing what each mode
// would do instead of opening sockets.
type planner struct {
	plan plan
}

var _ model.ModeHandler = (*planner)(nil)

// TCPClient describes a connection to the remote TCP endpoint.
func (p *planner) TCPClient(cfg model.ResolvedConfig) error {
	p.describe(cfg, fmt.Sprintf("connect to %s over tcp", cfg.Endpoint()))
	return nil
}

// UDPClient describes datagrams sent to the remote UDP endpoint.
func (p *planner) UDPClient(cfg model.ResolvedConfig) error {
	p.describe(cfg, fmt.Sprintf("send datagrams to %s", cfg.Endpoint()))
	return nil
}

// TCPServer describes a TCP listener, repeating when keep-accept is set.
func (p *planner) TCPServer(cfg model.ResolvedConfig) error {
	action := fmt.Sprintf("accept one tcp connection on %s", cfg.Endpoint())
	if cfg.KeepAccept {
		action = fmt.Sprintf("accept tcp connections on %s until interrupted", cfg.Endpoint())
	}
	p.describe(cfg, action)
	return nil
}

// UDPServer describes a UDP receiver, open to any peer when keep-accept is set.
func (p *planner) UDPServer(cfg model.ResolvedConfig) error {
	action := fmt.Sprintf("receive datagrams on %s from the first peer", cfg.Endpoint())
	if cfg.KeepAccept {
		action = fmt.Sprintf("receive datagrams on %s from any peer", cfg.Endpoint())
	}
	p.describe(cfg, action)
	return nil
}

// PortScan refuses the scan mode, which has no implementation yet.
func (p *planner) PortScan(cfg model.ResolvedConfig) error {
	return model.NewCLIError(model.ExitGeneralError, "port scan mode is not available yet")
}

// describe fills the plan from cfg with the given action text.
func (p *planner) describe(cfg model.ResolvedConfig, action string) {
	p.plan = plan{
		Mode:       cfg.Mode.String(),
		Protocol:   cfg.Mode.Protocol(),
		Endpoint:   cfg.Endpoint(),
		Port:       cfg.Port,
		Address:    cfg.Address,
		KeepAccept: cfg.KeepAccept,
		Action:     action,
	}
}
