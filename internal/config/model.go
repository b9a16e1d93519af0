package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vk/kunyue/internal/digest"
	"github.com/vk/kunyue/internal/reveal"
)

// Preferences is the format-agnostic preference model.
type Preferences struct {
	// AnimationEnabled controls whether callers play the reveal narration.
	// The engine behaves identically either way.
	AnimationEnabled bool
	StepDelay        time.Duration
	Digest           string
	Log              LogPreferences
	Server           ServerPreferences
}

// LogPreferences selects the slog handler.
type LogPreferences struct {
	Level  string
	Format string
}

// ServerPreferences configures the socket.io bridge.
type ServerPreferences struct {
	Address         string
	HealthcheckPath string
}

// Default returns the preferences used when no file exists.
func Default() Preferences {
	return Preferences{
		AnimationEnabled: true,
		StepDelay:        reveal.DefaultDelay,
		Digest:           digest.Default,
		Log: LogPreferences{
			Level:  "info",
			Format: "text",
		},
		Server: ServerPreferences{
			Address:         ":3000",
			HealthcheckPath: "/health",
		},
	}
}

// Validate checks every field and reports all problems at once.
func (p Preferences) Validate() error {
	var errs []error
	if p.StepDelay < 0 {
		errs = append(errs, fmt.Errorf("step_delay must not be negative, got %s", p.StepDelay))
	}
	if !digest.Available(p.Digest) {
		errs = append(errs, fmt.Errorf("digest must be one of %s, got %q", strings.Join(digest.Names(), ", "), p.Digest))
	}
	if !ValidLogLevel(p.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got %q", p.Log.Level))
	}
	if !ValidLogFormat(p.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be 'text' or 'json', got %q", p.Log.Format))
	}
	if p.Server.HealthcheckPath != "" && !strings.HasPrefix(p.Server.HealthcheckPath, "/") {
		errs = append(errs, fmt.Errorf("server.healthcheck_path must start with '/', got %q", p.Server.HealthcheckPath))
	}
	return errors.Join(errs...)
}

// ValidLogLevel reports whether level is a supported log level.
func ValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidLogFormat reports whether format is a supported log format.
func ValidLogFormat(format string) bool {
	return format == "text" || format == "json"
}
