// Package app wires preferences, the codec engine and its collaborators
// together and runs a single command. It is independent of how the command
// was parsed, so cmd/cli and tests drive it the same way.
package app
