package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Event names used on the socket.
const (
	EventRequest  = "request"
	EventResponse = "response"
	EventReveal   = "reveal"
)

// Op names an operation a client can request.
type Op string

const (
	OpEncode  Op = "encode"
	OpDecode  Op = "decode"
	OpExtract Op = "extract"
)

// Response statuses that are not decode statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusInvalid = "invalid"
)

// ErrEmptyPayload is returned when an event arrives without a payload.
var ErrEmptyPayload = errors.New("event carried no payload")

// Request is the payload of a "request" event.
type Request struct {
	ID   string `json:"id"`
	Op   Op     `json:"op"`
	Text string `json:"text"`
	Key  string `json:"key,omitempty"`
}

// Validate checks the inputs the operation needs. Text is always required,
// the credential only for encode. Both are trimmed before the check.
func (r Request) Validate() error {
	switch r.Op {
	case OpEncode, OpDecode, OpExtract:
	default:
		return &RequestError{Field: "op", Reason: "unknown operation " + strconv.Quote(string(r.Op))}
	}
	if strings.TrimSpace(r.Text) == "" {
		return &RequestError{Field: "text", Reason: "must not be empty"}
	}
	if r.Op == OpEncode && strings.TrimSpace(r.Key) == "" {
		return &RequestError{Field: "key", Reason: "must not be empty"}
	}
	return nil
}

// Response is the payload of a "response" event. Steps repeats the narration
// of the request so clients can replay it even if they missed reveal events.
type Response struct {
	ID     string   `json:"id"`
	Op     Op       `json:"op"`
	Status string   `json:"status"`
	Text   string   `json:"text"`
	Key    string   `json:"key,omitempty"`
	Steps  []string `json:"steps,omitempty"`
}

// OK reports whether the operation succeeded.
func (r Response) OK() bool {
	return r.Status == StatusOK
}

// RevealLine is the payload of a "reveal" event.
type RevealLine struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Line  string `json:"line"`
}

// DecodeRequest converts a socket payload into a Request.
func DecodeRequest(payload any) (Request, error) {
	var req Request
	err := decodePayload(payload, &req)
	return req, err
}

// DecodeResponse converts a socket payload into a Response.
func DecodeResponse(payload any) (Response, error) {
	var resp Response
	err := decodePayload(payload, &resp)
	return resp, err
}

// DecodeRevealLine converts a socket payload into a RevealLine.
func DecodeRevealLine(payload any) (RevealLine, error) {
	var line RevealLine
	err := decodePayload(payload, &line)
	return line, err
}

// toPayload turns v into the generic map form the socket layer serializes.
func toPayload(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodePayload accepts whatever the socket layer hands over (a decoded map,
// a JSON string or raw bytes) and unmarshals it into dst.
func decodePayload(payload any, dst any) error {
	var raw []byte
	switch p := payload.(type) {
	case nil:
		return ErrEmptyPayload
	case []byte:
		raw = p
	case string:
		raw = []byte(p)
	default:
		var err error
		raw, err = json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to re-encode payload: %w", err)
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
