// Package bridge exposes a codec.Engine over socket.io so an external UI (or
// another kunyue process) can share one registry.
//
// Clients emit a "request" event carrying a Request and receive a "response"
// event carrying the matching Response. When narration is enabled the server
// first emits one "reveal" event per step.
package bridge
