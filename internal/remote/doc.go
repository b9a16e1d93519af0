// Package remote forwards codec requests to a running bridge server so that
// several short-lived CLI invocations can share one registry.
package remote
