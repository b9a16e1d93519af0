package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/kunyue/internal/bridge"
	"github.com/vk/kunyue/internal/config"
	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/vk/kunyue/internal/reveal"
)

// ErrOperationFailed is returned when a request completed but did not
// succeed, e.g. a decode with the wrong credential. The explanation has
// already been written to the output.
var ErrOperationFailed = errors.New("operation failed")

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", string(a.cfg.Command))
	defer a.logger.Debug("App.Run method finished.")

	switch a.cfg.Command {
	case CommandEncode:
		return a.runRequest(ctx, bridge.Request{Op: bridge.OpEncode, Text: a.cfg.Text, Key: a.cfg.Key})
	case CommandDecode:
		return a.runRequest(ctx, bridge.Request{Op: bridge.OpDecode, Text: a.cfg.Text, Key: a.cfg.Key})
	case CommandExtract:
		return a.runRequest(ctx, bridge.Request{Op: bridge.OpExtract, Text: a.cfg.Text})
	case CommandSettings:
		return a.runSettings(ctx)
	case CommandServe:
		return a.runServe(ctx)
	case CommandSession:
		return a.runSession(ctx)
	default:
		return fmt.Errorf("unknown command %q", a.cfg.Command)
	}
}

// do runs req against the remote bridge when one is configured and against
// the local engine otherwise, narrating first if animation is on. Remote
// narration is replayed from the steps carried by the response.
func (a *App) do(ctx context.Context, req bridge.Request) (bridge.Response, error) {
	if a.remote != nil {
		resp, err := a.remote.Do(ctx, req)
		if err != nil {
			return resp, err
		}
		_, err = reveal.Reveal(ctx, a.player, resp.Steps, a.printStep, func() string { return resp.Text })
		return resp, err
	}

	var resp bridge.Response
	var steps []string
	if req.Validate() == nil {
		steps = a.dispatcher.Steps(req)
	}
	_, err := reveal.Reveal(ctx, a.player, steps, a.printStep, func() string {
		resp = a.dispatcher.Handle(ctx, req)
		return resp.Text
	})
	return resp, err
}

func (a *App) runRequest(ctx context.Context, req bridge.Request) error {
	resp, err := a.do(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, resp.Text)

	if !resp.OK() {
		return fmt.Errorf("%w: %s", ErrOperationFailed, resp.Status)
	}
	if a.cfg.Copy {
		if err := a.copyFn(resp.Text); err != nil {
			return fmt.Errorf("failed to copy result to clipboard: %w", err)
		}
		a.logger.Info("Result copied to clipboard.")
	}
	return nil
}

func (a *App) printStep(_ int, line string) {
	fmt.Fprintln(a.outW, line)
}

func (a *App) runSettings(ctx context.Context) error {
	if a.cfg.Animation != "" {
		if a.prefsPath == "" {
			return errors.New("cannot save settings: no preferences path")
		}
		prefs, err := config.SetAnimation(ctx, a.prefsPath, a.cfg.Animation == "on")
		if err != nil {
			return err
		}
		a.prefs.AnimationEnabled = prefs.AnimationEnabled
	}

	fmt.Fprintf(a.outW, "preferences: %s\n", a.prefsPath)
	fmt.Fprintf(a.outW, "animation:   %s\n", onOff(a.prefs.AnimationEnabled))
	fmt.Fprintf(a.outW, "step delay:  %s\n", a.prefs.StepDelay)
	fmt.Fprintf(a.outW, "digest:      %s\n", a.prefs.Digest)
	fmt.Fprintf(a.outW, "log:         %s/%s\n", a.prefs.Log.Level, a.prefs.Log.Format)
	fmt.Fprintf(a.outW, "server:      %s (health %s)\n", a.prefs.Server.Address, a.prefs.Server.HealthcheckPath)
	return nil
}

func (a *App) runServe(ctx context.Context) error {
	srv := bridge.NewServer(a.dispatcher, bridge.ServerOptions{
		Address:         a.prefs.Server.Address,
		HealthcheckPath: a.prefs.Server.HealthcheckPath,
		Player:          a.player,
	})
	return srv.ListenAndServe(ctx)
}

// runSession reads one command per line until EOF or "quit". Every request
// shares the App's registry, so earlier encodes can be decoded later. decode
// uses the embedded credential unless -key is given.
func (a *App) runSession(ctx context.Context) error {
	scanner := bufio.NewScanner(a.inR)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		var req bridge.Request
		switch cmd {
		case "quit", "exit":
			return nil
		case "encode":
			key, text, _ := strings.Cut(rest, " ")
			req = bridge.Request{Op: bridge.OpEncode, Key: key, Text: text}
		case "decode":
			req = bridge.Request{Op: bridge.OpDecode, Text: rest}
			if after, ok := strings.CutPrefix(rest, "-key "); ok {
				key, text, _ := strings.Cut(strings.TrimSpace(after), " ")
				req = bridge.Request{Op: bridge.OpDecode, Key: key, Text: text}
			}
		case "extract":
			req = bridge.Request{Op: bridge.OpExtract, Text: rest}
		default:
			fmt.Fprintf(a.outW, "unknown command %q (encode <key> <text> | decode [-key <key>] <text> | extract <text> | quit)\n", cmd)
			continue
		}

		resp, err := a.do(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.outW, resp.Text)
	}
	return scanner.Err()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
