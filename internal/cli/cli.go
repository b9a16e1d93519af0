package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/kunyue/internal/app"
	"github.com/vk/kunyue/internal/digest"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("kunyue", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
kunyue - turns text into 坤曰 phrases and back.

Usage:
  kunyue [options] <command> [command options]

Commands:
  encode    -text TEXT -key KEY [-copy]   encode TEXT with credential KEY
  decode    -text TEXT [-key KEY] [-copy] decode TEXT; KEY defaults to the embedded credential
  extract   -text TEXT                    print the credential embedded in TEXT
  settings  [-animation on|off]           show or change saved preferences
  serve     [-addr ADDR]                  expose the codec over socket.io
  session                                 read commands from stdin, one per line

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the preferences file (default: user config dir).")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', 'error'. Overrides preferences.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json'. Overrides preferences.")
	digestFlag := flagSet.String("digest", "", "Digest algorithm: "+strings.Join(digest.Names(), ", ")+". Overrides preferences.")
	animateFlag := flagSet.Bool("animate", false, "Show the step-by-step reveal before the result.")
	noAnimateFlag := flagSet.Bool("no-animate", false, "Print the result immediately.")
	remoteFlag := flagSet.String("remote", "", "URL of a running 'kunyue serve' to forward requests to.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Global arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{
		Command:    app.Command(flagSet.Arg(0)),
		ConfigPath: *configFlag,
		LogLevel:   strings.ToLower(*logLevelFlag),
		LogFormat:  strings.ToLower(*logFormatFlag),
		Digest:     strings.ToLower(*digestFlag),
		Remote:     *remoteFlag,
	}

	animate, err := animationOverride(flagSet, *animateFlag, *noAnimateFlag)
	if err != nil {
		return nil, false, usageError(err)
	}
	cfg.Animate = animate

	shouldExit, err := parseCommand(&cfg, flagSet.Args()[1:], output)
	if err != nil || shouldExit {
		return nil, shouldExit, err
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError(err)
	}

	slog.Debug("CLI parser finished successfully.", "command", string(config.Command))
	return config, false, nil
}

// animationOverride returns nil unless one of the animation flags was given.
func animationOverride(flagSet *flag.FlagSet, animate, noAnimate bool) (*bool, error) {
	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case set["animate"] && set["no-animate"]:
		return nil, errors.New("-animate and -no-animate are mutually exclusive")
	case set["animate"]:
		return &animate, nil
	case set["no-animate"]:
		v := !noAnimate
		return &v, nil
	default:
		return nil, nil
	}
}

// parseCommand parses the flags that follow the command name into cfg.
func parseCommand(cfg *app.Config, args []string, output io.Writer) (bool, error) {
	cmdSet := flag.NewFlagSet("kunyue "+string(cfg.Command), flag.ContinueOnError)
	cmdSet.SetOutput(output)

	var text, key, animation, addr *string
	var copyResult *bool

	switch cfg.Command {
	case app.CommandEncode, app.CommandDecode:
		text = cmdSet.String("text", "", "Text to "+string(cfg.Command)+". Remaining arguments are used when omitted.")
		key = cmdSet.String("key", "", "Credential.")
		copyResult = cmdSet.Bool("copy", false, "Copy the result to the system clipboard.")
	case app.CommandExtract:
		text = cmdSet.String("text", "", "Encoded text. Remaining arguments are used when omitted.")
	case app.CommandSettings:
		animation = cmdSet.String("animation", "", "Turn the reveal animation 'on' or 'off'.")
	case app.CommandServe:
		addr = cmdSet.String("addr", "", "Listen address (default from preferences).")
	case app.CommandSession:
	default:
		return false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cfg.Command)}
	}

	if err := cmdSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return false, &ExitError{Code: 2, Message: err.Error()}
	}

	if text != nil {
		cfg.Text = *text
		if cfg.Text == "" {
			cfg.Text = strings.Join(cmdSet.Args(), " ")
		}
	} else if cmdSet.NArg() > 0 {
		return false, &ExitError{Code: 2, Message: fmt.Sprintf("%s: unexpected arguments: %s", cfg.Command, strings.Join(cmdSet.Args(), " "))}
	}
	if key != nil {
		cfg.Key = *key
	}
	if copyResult != nil {
		cfg.Copy = *copyResult
	}
	if animation != nil {
		cfg.Animation = strings.ToLower(*animation)
	}
	if addr != nil {
		cfg.Addr = *addr
	}
	return false, nil
}
