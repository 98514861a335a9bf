// Package envfile locates and reads the dotenv file that supplies
// environment-variable defaults for rsnc options.
//
// The search order is fixed: "~/.rsncenv" first, then ".env" in the
// working directory. The first file that exists wins; the two are never
// merged. A missing file is not an error.
//
// Variables already present in the process environment always take
// precedence over values read from the file (non-clobbering overlay).
package envfile
