package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/rsnc/internal/envfile"
	"github.com/mmr-tortoise/rsnc/internal/model"
)

// execute runs the root command with args against env and returns the
// exit code with captured stdout and stderr.
func execute(t *testing.T, env EnvState, args ...string) (model.ExitCode, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand(env)
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	code := run(cmd, &stderr)
	return code, stdout.String(), stderr.String()
}

// TestRoot_TextOutput verifies the default text plan for a TCP client.
func TestRoot_TextOutput(t *testing.T) {
	code, stdout, _ := execute(t, EnvState{}, "80", "example.com")
	require.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stdout, "tcp-client")
	assert.Contains(t, stdout, "example.com:80")
	assert.Contains(t, stdout, "connect to example.com:80 over tcp")
}

// TestRoot_JSONOutput verifies the UDP server plan as JSON, including the
// diagnostic address that the server does not bind to.
func TestRoot_JSONOutput(t *testing.T) {
	code, stdout, _ := execute(t, EnvState{}, "-u", "-l", "54321", "127.0.0.1", "--output", "json")
	require.Equal(t, model.ExitSuccess, code)

	var got plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "udp-server", got.Mode)
	assert.Equal(t, "udp", got.Protocol)
	assert.Equal(t, ":54321", got.Endpoint)
	require.NotNil(t, got.Port)
	assert.Equal(t, uint16(54321), *got.Port)
	require.NotNil(t, got.Address)
	assert.Equal(t, "127.0.0.1", *got.Address)
}

// TestRoot_YAMLOutput verifies the TCP server plan as YAML.
func TestRoot_YAMLOutput(t *testing.T) {
	code, stdout, _ := execute(t, EnvState{}, "-l", "-k", "8080", "--output", "yaml")
	require.Equal(t, model.ExitSuccess, code)

	var got plan
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "tcp-server", got.Mode)
	assert.True(t, got.KeepAccept)
	assert.Contains(t, got.Action, "until interrupted")
}

// TestRoot_EnvironmentFallback verifies options supplied only through the
// environment state.
func TestRoot_EnvironmentFallback(t *testing.T) {
	env := EnvState{Values: envfile.Environment{
		"RSNC_UDP":    "true",
		"RSNC_PORT":   "53",
		"RSNC_IPADDR": "1.1.1.1",
	}}

	code, stdout, _ := execute(t, env, "--output", "json")
	require.Equal(t, model.ExitSuccess, code)

	var got plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "udp-client", got.Mode)
	assert.Equal(t, "1.1.1.1:53", got.Endpoint)
}

// TestRoot_FlagBeatsEnvironment verifies an explicit flag overrides the
// environment for the protocol.
func TestRoot_FlagBeatsEnvironment(t *testing.T) {
	env := EnvState{Values: envfile.Environment{"RSNC_UDP": "true"}}

	code, stdout, _ := execute(t, env, "--udp=false", "80", "10.0.0.1")
	require.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stdout, "tcp-client")
}

// TestRoot_Errors verifies exit codes and messages for failures.
func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    model.ExitCode
		mention string
	}{
		{name: "no target", args: nil, code: model.ExitMissingTarget, mention: "missing target"},
		{name: "client without address", args: []string{"-u", "53"}, code: model.ExitMissingTarget, mention: "IPADDR"},
		{name: "unknown flag", args: []string{"--bogus"}, code: model.ExitMalformedArguments, mention: "--bogus"},
		{name: "empty port argument", args: []string{"", "h"}, code: model.ExitMalformedArguments, mention: "PORT"},
		{name: "empty address argument", args: []string{"80", ""}, code: model.ExitMissingTarget, mention: "IPADDR"},
		{name: "port out of range", args: []string{"70000", "h"}, code: model.ExitMalformedArguments, mention: "PORT"},
		{name: "too many positionals", args: []string{"1", "h", "x"}, code: model.ExitMalformedArguments, mention: "x"},
		{name: "bad output format", args: []string{"--output", "xml", "1", "h"}, code: model.ExitMalformedArguments, mention: "--output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, EnvState{}, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error: ")
			assert.Contains(t, stderr, tt.mention)
		})
	}
}

// TestRoot_JSONError verifies errors are printed as JSON with --output json.
func TestRoot_JSONError(t *testing.T) {
	code, _, stderr := execute(t, EnvState{}, "--output", "json", "-l")
	require.Equal(t, model.ExitMissingTarget, code)

	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(stderr), &got))
	assert.Equal(t, "cannot resolve target", got["error"]["message"])
	assert.Contains(t, got["error"]["detail"], "tcp-server")
}

// TestRoot_Verbose verifies debug logging goes to stderr only with -v.
func TestRoot_Verbose(t *testing.T) {
	code, _, stderr := execute(t, EnvState{Path: "/tmp/.rsncenv"}, "-v", "-l", "-k", "9000", "10.0.0.1")
	require.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stderr, "loaded env file")
	assert.Contains(t, stderr, "resolved")
	assert.Contains(t, stderr, "ignored")
	assert.Contains(t, stderr, "RSNC_LISTEN")
	assert.Contains(t, stderr, "-l/--listen")

	code, _, stderr = execute(t, EnvState{}, "-l", "9000")
	require.Equal(t, model.ExitSuccess, code)
	assert.Empty(t, stderr)
}

// TestRoot_BrokenEnvFileIsNotFatal verifies a dotenv read failure is only
// a warning.
func TestRoot_BrokenEnvFileIsNotFatal(t *testing.T) {
	env := EnvState{Path: "/tmp/.rsncenv", Err: errors.New("failed to parse env file")}

	code, stdout, stderr := execute(t, env, "-l", "9000")
	require.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stdout, "tcp-server")
	assert.Contains(t, stderr, "ignoring env file")
}

// TestLoadEnv verifies the loader result is carried into EnvState.
func TestLoadEnv(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, envfile.HomeFileName)
	require.NoError(t, os.WriteFile(path, []byte("RSNC_LISTEN=true\nRSNC_PORT=7\n"), 0o644))

	env := LoadEnv(envfile.NewLoaderWith(home, t.TempDir(), envfile.Environment{"RSNC_PORT": "8"}))
	require.NoError(t, env.Err)
	assert.Equal(t, path, env.Path)
	assert.Equal(t, "true", env.Values["RSNC_LISTEN"])
	assert.Equal(t, "8", env.Values["RSNC_PORT"])

	code, stdout, _ := execute(t, env, "--output", "json")
	require.Equal(t, model.ExitSuccess, code)
	var got plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, ":8", got.Endpoint)
}

// TestPlanner_PortScan verifies the reserved mode is refused.
func TestPlanner_PortScan(t *testing.T) {
	err := model.Dispatch(model.ResolvedConfig{Mode: model.ModePortScan}, &planner{})
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}
