package bridge

import (
	"context"
	"strings"

	"github.com/vk/kunyue/internal/codec"
	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/vk/kunyue/internal/reveal"
)

// Dispatcher maps requests onto a codec.Engine. It has no transport
// dependencies and is safe for concurrent use.
type Dispatcher struct {
	engine *codec.Engine
}

// NewDispatcher creates a Dispatcher for engine.
func NewDispatcher(engine *codec.Engine) *Dispatcher {
	return &Dispatcher{engine: engine}
}

// Handle runs req and describes the outcome. It never fails; problems are
// reported through the response status.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	logger := ctxlog.FromContext(ctx).With("id", req.ID, "op", string(req.Op))
	resp := Response{ID: req.ID, Op: req.Op}

	if err := req.Validate(); err != nil {
		logger.Debug("Rejected request.", "error", err)
		resp.Status = StatusInvalid
		resp.Text = err.Error()
		return resp
	}

	text := strings.TrimSpace(req.Text)
	key := strings.TrimSpace(req.Key)

	switch req.Op {
	case OpEncode:
		res, err := d.engine.Encode(ctx, text, key)
		if err != nil {
			resp.Status = StatusError
			resp.Text = codec.FailureText(err)
			return resp
		}
		resp.Status = StatusOK
		resp.Text = res.Formatted
		resp.Key = key

	case OpDecode:
		if key == "" {
			key, _ = codec.ExtractCredential(text)
		}
		res := d.engine.Decode(ctx, text, key)
		resp.Status = res.Status.String()
		resp.Text = res.Text
		resp.Key = key

	case OpExtract:
		cred, ok := codec.ExtractCredential(text)
		if !ok {
			resp.Status = codec.StatusMalformed.String()
			resp.Text = codec.StatusMalformed.Message()
			return resp
		}
		resp.Status = StatusOK
		resp.Text = cred
		resp.Key = cred
	}

	logger.Debug("Handled request.", "status", resp.Status)
	return resp
}

// Steps returns the narration shown before req's result. Extraction is
// instant and has none.
func (d *Dispatcher) Steps(req Request) []string {
	text := strings.TrimSpace(req.Text)
	key := strings.TrimSpace(req.Key)
	switch req.Op {
	case OpEncode:
		return reveal.EncodeSteps(text, key)
	case OpDecode:
		if key == "" {
			key, _ = codec.ExtractCredential(text)
		}
		return reveal.DecodeSteps(text, key)
	default:
		return nil
	}
}
