package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMode_String verifies that Mode values produce the expected string
// representations for CLI output and JSON serialization.
func TestMode_String(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeTCPClient, "tcp-client"},
		{ModeUDPClient, "udp-client"},
		{ModeTCPServer, "tcp-server"},
		{ModeUDPServer, "udp-server"},
		{ModePortScan, "port-scan"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.String())
		})
	}
}

// TestMode_IsValid checks that only defined modes pass validation.
func TestMode_IsValid(t *testing.T) {
	for _, m := range modes {
		assert.True(t, m.IsValid(), "mode %q", m)
	}
	assert.False(t, Mode("netcat").IsValid())
	assert.False(t, Mode("").IsValid())
}

// TestMode_Classification verifies the server/client split and the
// protocol each mode runs over.
func TestMode_Classification(t *testing.T) {
	tests := []struct {
		mode     Mode
		server   bool
		client   bool
		protocol string
	}{
		{ModeTCPClient, false, true, "tcp"},
		{ModeUDPClient, false, true, "udp"},
		{ModeTCPServer, true, false, "tcp"},
		{ModeUDPServer, true, false, "udp"},
		{ModePortScan, false, false, "tcp"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.server, tt.mode.IsServer())
			assert.Equal(t, tt.client, tt.mode.IsClient())
			assert.Equal(t, tt.protocol, tt.mode.Protocol())
		})
	}
}

// TestResolvedConfig_Endpoint verifies socket address formatting for
// client and server modes, including IPv6 bracketing.
func TestResolvedConfig_Endpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  ResolvedConfig
		want string
	}{
		{
			name: "tcp client",
			cfg:  ResolvedConfig{Mode: ModeTCPClient, Port: Uint16(80), Address: String("example.com")},
			want: "example.com:80",
		},
		{
			name: "udp client ipv6",
			cfg:  ResolvedConfig{Mode: ModeUDPClient, Port: Uint16(53), Address: String("::1")},
			want: "[::1]:53",
		},
		{
			name: "server ignores address",
			cfg:  ResolvedConfig{Mode: ModeUDPServer, Port: Uint16(54321), Address: String("127.0.0.1")},
			want: ":54321",
		},
		{
			name: "client without address",
			cfg:  ResolvedConfig{Mode: ModeTCPClient, Port: Uint16(80)},
			want: "",
		},
		{
			name: "client with empty address",
			cfg:  ResolvedConfig{Mode: ModeUDPClient, Port: Uint16(53), Address: String("")},
			want: "",
		},
		{
			name: "server without port",
			cfg:  ResolvedConfig{Mode: ModeTCPServer},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Endpoint())
			assert.Equal(t, tt.want != "", tt.cfg.HasTarget())
		})
	}
}
