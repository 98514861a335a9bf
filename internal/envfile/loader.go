package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

const (
	// HomeFileName is the per-user dotenv file looked up in the home directory.
	HomeFileName = ".rsncenv"

	// LocalFileName is the fallback dotenv file in the working directory.
	LocalFileName = ".env"
)

// Environment is a set of environment variables keyed by name.
type Environment map[string]string

// Lookup returns the value of key and whether it is set to a non-empty value.
// Empty values are treated as unset.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Overlay merges top onto base without clobbering: keys of top win, keys
// only in base are kept. Neither input is modified.
func Overlay(base, top Environment) Environment {
	out := make(Environment, len(base)+len(top))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range top {
		out[k] = v
	}
	return out
}

// FromEnviron converts "KEY=VALUE" pairs (as returned by os.Environ) into
// an Environment. Entries without '=' are skipped.
func FromEnviron(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// FromProcess snapshots the current process environment.
func FromProcess() Environment {
	return FromEnviron(os.Environ())
}

// ExpandHome replaces a leading "~" in path with home.
// Paths not starting with "~" are returned unchanged, as is "~user/...".
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Loader searches the dotenv candidates and reads the first one found.
//
// The zero value is not useful; use NewLoader for the real process or
// NewLoaderWith to inject the home directory, working directory and
// environment (tests).
type Loader struct {
	// home is the user's home directory. Empty when it cannot be determined,
	// in which case the home candidate is skipped.
	home string

	// dir is the working directory the fallback file is looked up in.
	dir string

	// environ is the process environment the file values are overlaid with.
	environ Environment
}

// NewLoader creates a Loader bound to the current user's home directory,
// the current working directory and the process environment.
func NewLoader() *Loader {
	// A missing home or unreadable working directory only removes a
	// candidate; it never fails the load.
	home, _ := os.UserHomeDir()
	dir, _ := os.Getwd()
	return NewLoaderWith(home, dir, FromProcess())
}

// NewLoaderWith creates a Loader with explicit locations and environment.
func NewLoaderWith(home, dir string, environ Environment) *Loader {
	if environ == nil {
		environ = Environment{}
	}
	return &Loader{home: home, dir: dir, environ: environ}
}

// Candidates returns the dotenv paths in search order.
func (l *Loader) Candidates() []string {
	var paths []string
	if l.home != "" {
		paths = append(paths, ExpandHome("~/"+HomeFileName, l.home))
	}
	paths = append(paths, filepath.Join(l.dir, LocalFileName))
	return paths
}

// Find returns the first candidate that exists as a regular file.
func (l *Loader) Find() (string, bool) {
	for _, path := range l.Candidates() {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return path, true
	}
	return "", false
}

// Load returns the effective environment: the values of the first dotenv
// file found, overlaid by the process environment so that variables
// already set are never replaced. The returned path is the file that was
// read, or "" when no candidate exists.
//
// Load does not modify the process environment. A file that exists but
// cannot be read or parsed is reported as an error.
func (l *Loader) Load() (Environment, string, error) {
	path, ok := l.Find()
	if !ok {
		return Overlay(nil, l.environ), "", nil
	}

	fileEnv, err := Read(path)
	if err != nil {
		return Overlay(nil, l.environ), path, err
	}
	return Overlay(fileEnv, l.environ), path, nil
}

// Apply exports the first dotenv file found into the process environment,
// setting only variables that are not set yet. It returns the file used,
// or "" when none exists. Errors are swallowed: a broken dotenv file must
// not prevent startup, and flag parsing will report bad values.
func (l *Loader) Apply() string {
	path, ok := l.Find()
	if !ok {
		return ""
	}
	// gotenv.Load never overrides variables that are already present.
	_ = gotenv.Load(path)
	return path
}

// LoadProcessEnvironment injects the dotenv file into the process
// environment without clobbering existing variables. Calling it again
// re-checks the candidates but leaves already-set values untouched.
func LoadProcessEnvironment() {
	NewLoader().Apply()
}

// Read parses a dotenv file of KEY=VALUE lines.
func Read(path string) (Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	parsed, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return Environment(parsed), nil
}
