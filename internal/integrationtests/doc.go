// Package integration_tests drives the whole CLI, from argument parsing to
// output, against isolated preferences files.
package integration_tests
