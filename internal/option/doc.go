// Package option declares the rsnc command-line surface and parses it into
// model.RawOptions.
//
// Every option is bound to a short flag, a long flag (or a positional
// index) and an environment variable. Values are layered with viper in the
// order explicit flag > environment variable > built-in default, so the
// resolver never has to consult more than one source.
//
// The tcp and udp flags form an advisory group that is not enforced; both
// may be set at once and the resolver decides the tie-break.
package option
