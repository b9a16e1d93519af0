package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kunyue/internal/ctxlog"
)

func writePrefs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferences.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	prefs, err := Load(testContext(), filepath.Join(t.TempDir(), "nope.hcl"))

	require.NoError(t, err)
	assert.Equal(t, Default(), prefs)
	assert.True(t, prefs.AnimationEnabled)
	assert.Equal(t, 300*time.Millisecond, prefs.StepDelay)
}

func TestLoad_FullFile(t *testing.T) {
	// --- Arrange ---
	path := writePrefs(t, `
animation_enabled = false
step_delay        = "50ms"
digest            = "sha3-256"

log {
  level  = "debug"
  format = "json"
}

server {
  address          = "127.0.0.1:9000"
  healthcheck_path = "/healthz"
}
`)

	// --- Act ---
	prefs, err := Load(testContext(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Preferences{
		AnimationEnabled: false,
		StepDelay:        50 * time.Millisecond,
		Digest:           "sha3-256",
		Log:              LogPreferences{Level: "debug", Format: "json"},
		Server:           ServerPreferences{Address: "127.0.0.1:9000", HealthcheckPath: "/healthz"},
	}, prefs)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writePrefs(t, `
log {
  level = "warn"
}
`)

	prefs, err := Load(testContext(), path)

	require.NoError(t, err)
	want := Default()
	want.Log.Level = "warn"
	assert.Equal(t, want, prefs)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errLike string
	}{
		{name: "syntax error", content: `animation_enabled = `, errLike: "failed to parse"},
		{name: "unknown attribute", content: `colour = "red"`, errLike: "failed to decode"},
		{name: "wrong type", content: `animation_enabled = "maybe"`, errLike: "failed to decode"},
		{name: "bad duration", content: `step_delay = "soon"`, errLike: "step_delay"},
		{name: "negative duration", content: `step_delay = "-1s"`, errLike: "must not be negative"},
		{name: "unknown digest", content: `digest = "md5"`, errLike: "digest must be one of"},
		{name: "bad log format", content: "log {\n  format = \"xml\"\n}\n", errLike: "log.format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(testContext(), writePrefs(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errLike)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	// --- Arrange ---
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "nested", "dir", "preferences.hcl")
	want := Default()
	want.AnimationEnabled = false
	want.StepDelay = 1500 * time.Millisecond
	want.Digest = "blake2b-256"
	want.Server.Address = ":4000"

	// --- Act ---
	require.NoError(t, Save(ctx, path, want))
	got, err := Load(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")
}

func TestSave_RejectsInvalid(t *testing.T) {
	prefs := Default()
	prefs.Digest = "crc32"

	err := Save(testContext(), filepath.Join(t.TempDir(), "p.hcl"), prefs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to save")
}

func TestSetAnimation(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "preferences.hcl")

	prefs, err := SetAnimation(ctx, path, false)
	require.NoError(t, err)
	assert.False(t, prefs.AnimationEnabled)

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	assert.False(t, loaded.AnimationEnabled)

	prefs, err = SetAnimation(ctx, path, true)
	require.NoError(t, err)
	assert.True(t, prefs.AnimationEnabled)
}

func TestEncode_IsParseable(t *testing.T) {
	out := string(Encode(Default()))

	assert.Contains(t, out, "animation_enabled")
	assert.Contains(t, out, "log {")
	assert.Contains(t, out, "server {")
	assert.Contains(t, out, `"300ms"`)
}

func TestValidate_JoinsErrors(t *testing.T) {
	prefs := Default()
	prefs.Digest = "md5"
	prefs.Log.Level = "loud"

	err := prefs.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest")
	assert.Contains(t, err.Error(), "log.level")
}
