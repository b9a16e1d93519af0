// Package cli parses the command line into an app.Config and reports usage
// errors as ExitError values carrying the process exit code.
package cli
