package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/vk/kunyue/internal/bridge"
	"github.com/vk/kunyue/internal/codec"
	"github.com/vk/kunyue/internal/config"
	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/vk/kunyue/internal/inmemorystore"
	"github.com/vk/kunyue/internal/remote"
	"github.com/vk/kunyue/internal/reveal"
)

// App encapsulates the dependencies of one run: preferences, logger, the
// codec engine and whichever collaborators the command needs.
type App struct {
	outW   io.Writer
	inR    io.Reader
	logger *slog.Logger

	cfg        *Config
	prefs      config.Preferences
	prefsPath  string
	dispatcher *bridge.Dispatcher
	remote     *remote.Client
	player     *reveal.Player
	copyFn     func(string) error
}

// Option customizes an App.
type Option func(*App)

// WithInput sets the reader the session command consumes. Defaults to
// os.Stdin.
func WithInput(r io.Reader) Option {
	return func(a *App) { a.inR = r }
}

// WithClipboard replaces the system clipboard writer used by -copy.
func WithClipboard(fn func(string) error) Option {
	return func(a *App) { a.copyFn = fn }
}

// NewApp builds an App. Results go to outW and logs to logW. It panics if
// the preferences file exists but cannot be loaded, since nothing useful can
// run without it.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	bootLogger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), bootLogger)

	path := cfg.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			bootLogger.Warn("No user config directory, using defaults only.", "error", err)
		}
	}

	prefs := config.Default()
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			panic(fmt.Errorf("failed to load preferences: %w", err))
		}
		prefs = loaded
	}
	prefs = applyOverrides(prefs, cfg)

	logger := newLogger(prefs.Log.Level, prefs.Log.Format, logW)
	logger.Debug("Logger configured successfully.", "preferences", path)

	a := &App{
		outW:      outW,
		inR:       os.Stdin,
		logger:    logger,
		cfg:       cfg,
		prefs:     prefs,
		prefsPath: path,
		copyFn:    clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(a)
	}

	engine := codec.New(inmemorystore.New(), codec.WithDigest(prefs.Digest))
	a.dispatcher = bridge.NewDispatcher(engine)
	logger.Debug("Codec engine ready.", "digest", engine.Algorithm())

	if prefs.AnimationEnabled {
		a.player = reveal.NewPlayer(prefs.StepDelay)
	}
	if cfg.Remote != "" {
		a.remote = &remote.Client{URL: cfg.Remote}
		logger.Debug("Forwarding requests to remote bridge.", "url", cfg.Remote)
	}

	return a
}

// Preferences returns the effective preferences, flag overrides included.
func (a *App) Preferences() config.Preferences {
	return a.prefs
}

func applyOverrides(p config.Preferences, cfg *Config) config.Preferences {
	if cfg.LogLevel != "" {
		p.Log.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		p.Log.Format = cfg.LogFormat
	}
	if cfg.Digest != "" {
		p.Digest = cfg.Digest
	}
	if cfg.Animate != nil {
		p.AnimationEnabled = *cfg.Animate
	}
	if cfg.Addr != "" {
		p.Server.Address = cfg.Addr
	}
	return p
}
