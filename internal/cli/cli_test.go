package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kunyue/internal/app"
)

func TestParse_Encode(t *testing.T) {
	// --- Arrange ---
	args := []string{"-log-level", "DEBUG", "-digest", "sha3-256", "-config", "/tmp/p.hcl", "encode", "-text", " hello ", "-key", "abc123", "-copy"}
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.NotNil(t, cfg)
	assert.Equal(t, app.CommandEncode, cfg.Command)
	assert.Equal(t, "hello", cfg.Text)
	assert.Equal(t, "abc123", cfg.Key)
	assert.True(t, cfg.Copy)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sha3-256", cfg.Digest)
	assert.Equal(t, "/tmp/p.hcl", cfg.ConfigPath)
	assert.Nil(t, cfg.Animate, "no animation flag means the preference decides")
	assert.Empty(t, out.String())
}

func TestParse_TextFromRemainingArgs(t *testing.T) {
	cfg, _, err := Parse([]string{"decode", "-key", "k", "坤曰：a", "b"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "坤曰：a b", cfg.Text)
	assert.Equal(t, "k", cfg.Key)
}

func TestParse_AnimationFlags(t *testing.T) {
	cfg, _, err := Parse([]string{"-animate", "session"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, cfg.Animate)
	assert.True(t, *cfg.Animate)

	cfg, _, err = Parse([]string{"-no-animate", "session"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, cfg.Animate)
	assert.False(t, *cfg.Animate)

	_, _, err = Parse([]string{"-animate", "-no-animate", "session"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestParse_OtherCommands(t *testing.T) {
	cfg, _, err := Parse([]string{"settings", "-animation", "OFF"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, app.CommandSettings, cfg.Command)
	assert.Equal(t, "off", cfg.Animation)

	cfg, _, err = Parse([]string{"serve", "-addr", ":9000"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)

	cfg, _, err = Parse([]string{"-remote", "http://localhost:3000", "extract", "-text", "x"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Remote)
	assert.Equal(t, "x", cfg.Text)
}

func TestParse_Help(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		wantUsage string
	}{
		{name: "no arguments", args: nil, wantUsage: "Usage:"},
		{name: "global help", args: []string{"-h"}, wantUsage: "Commands:"},
		{name: "command help", args: []string{"encode", "-h"}, wantUsage: "-key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), tc.wantUsage)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		errLike string
	}{
		{name: "unknown global flag", args: []string{"--nope"}, errLike: "flag provided but not defined: -nope"},
		{name: "unknown command", args: []string{"shred"}, errLike: `unknown command "shred"`},
		{name: "unknown command flag", args: []string{"extract", "-key", "k"}, errLike: "flag provided but not defined: -key"},
		{name: "empty text", args: []string{"encode", "-key", "k", "-text", "   "}, errLike: "-text is required"},
		{name: "empty key", args: []string{"encode", "-text", "t"}, errLike: "-key is required"},
		{name: "bad log level", args: []string{"-log-level", "loud", "session"}, errLike: "invalid log-level"},
		{name: "bad digest", args: []string{"-digest", "md5", "session"}, errLike: "invalid digest"},
		{name: "stray args", args: []string{"session", "extra"}, errLike: "unexpected arguments: extra"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			assert.False(t, shouldExit)
			assert.Nil(t, cfg)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errLike)
		})
	}
}
