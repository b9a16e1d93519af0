package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kunyue/internal/app"
	"github.com/vk/kunyue/internal/cli"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of one harness run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
}

// Lines splits Output into lines without the trailing newline.
func (r *HarnessResult) Lines() []string {
	out := strings.TrimSuffix(r.Output, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Harness runs the CLI against an isolated preferences file.
type Harness struct {
	// PrefsPath is passed as -config to every run.
	PrefsPath string
}

// NewHarness creates a Harness whose preferences file holds prefs. An empty
// prefs leaves the file absent so defaults apply.
func NewHarness(t *testing.T, prefs string) *Harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferences.hcl")
	if prefs != "" {
		require.NoError(t, os.WriteFile(path, []byte(prefs), 0o600))
	}
	return &Harness{PrefsPath: path}
}

// Run parses args as the command line would and runs the App with stdin set
// to input. Debug logs are captured; set KUNYUE_TEST_LOGS=true to print them.
func (h *Harness) Run(ctx context.Context, t *testing.T, input string, args ...string) *HarnessResult {
	t.Helper()

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	full := append([]string{"-config", h.PrefsPath, "-log-level", "debug"}, args...)

	cfg, shouldExit, err := cli.Parse(full, out)
	if err != nil || shouldExit {
		return &HarnessResult{Output: out.String(), Err: err}
	}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, logs, cfg,
			app.WithInput(strings.NewReader(input)),
			app.WithClipboard(func(string) error { return nil }),
		)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logs.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("KUNYUE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
	}
}
