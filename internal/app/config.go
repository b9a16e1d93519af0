package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/kunyue/internal/config"
	"github.com/vk/kunyue/internal/digest"
)

// Command names what the App should do.
type Command string

const (
	CommandEncode   Command = "encode"
	CommandDecode   Command = "decode"
	CommandExtract  Command = "extract"
	CommandSettings Command = "settings"
	CommandServe    Command = "serve"
	CommandSession  Command = "session"
)

// Config holds everything one App run needs. Empty fields fall back to the
// stored preferences.
type Config struct {
	Command Command

	Text string
	Key  string
	Copy bool

	ConfigPath string
	LogLevel   string
	LogFormat  string
	Digest     string
	// Animate overrides the animation preference when non-nil.
	Animate *bool
	// Remote is the URL of a bridge server to forward requests to.
	Remote string
	// Addr overrides the listen address for serve.
	Addr string
	// Animation is the new value for the settings command: "on", "off" or
	// "" to only show the current settings.
	Animation string
}

// NewConfig trims and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.Text = strings.TrimSpace(cfg.Text)
	cfg.Key = strings.TrimSpace(cfg.Key)

	var errs []error
	switch cfg.Command {
	case CommandEncode:
		if cfg.Text == "" {
			errs = append(errs, errors.New("encode: -text is required"))
		}
		if cfg.Key == "" {
			errs = append(errs, errors.New("encode: -key is required"))
		}
	case CommandDecode, CommandExtract:
		if cfg.Text == "" {
			errs = append(errs, fmt.Errorf("%s: -text is required", cfg.Command))
		}
	case CommandSettings:
		switch cfg.Animation {
		case "", "on", "off":
		default:
			errs = append(errs, fmt.Errorf("settings: -animation must be 'on' or 'off', got %q", cfg.Animation))
		}
	case CommandServe:
		if cfg.Remote != "" {
			errs = append(errs, errors.New("serve: -remote cannot be combined with serve"))
		}
	case CommandSession:
	case "":
		errs = append(errs, errors.New("a command is required"))
	default:
		errs = append(errs, fmt.Errorf("unknown command %q", cfg.Command))
	}

	if cfg.LogLevel != "" && !config.ValidLogLevel(cfg.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	if cfg.LogFormat != "" && !config.ValidLogFormat(cfg.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat))
	}
	if cfg.Digest != "" && !digest.Available(cfg.Digest) {
		errs = append(errs, fmt.Errorf("invalid digest %q: must be one of %s", cfg.Digest, strings.Join(digest.Names(), ", ")))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
