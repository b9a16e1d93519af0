package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot mirrors the preferences file. Pointer fields tell an absent
// attribute or block apart from a zero value.
type fileRoot struct {
	AnimationEnabled *bool        `hcl:"animation_enabled,optional"`
	StepDelay        *string      `hcl:"step_delay,optional"`
	Digest           *string      `hcl:"digest,optional"`
	Log              *logBlock    `hcl:"log,block"`
	Server           *serverBlock `hcl:"server,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type serverBlock struct {
	Address         *string `hcl:"address,optional"`
	HealthcheckPath *string `hcl:"healthcheck_path,optional"`
}

// Load reads preferences from path on top of Default. A missing file yields
// the defaults without error.
func Load(ctx context.Context, path string) (Preferences, error) {
	logger := ctxlog.FromContext(ctx)
	prefs := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Preferences file not found, using defaults.", "path", path)
			return prefs, nil
		}
		return prefs, fmt.Errorf("error accessing preferences file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return prefs, fmt.Errorf("failed to parse preferences file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return prefs, fmt.Errorf("failed to decode preferences file %s: %w", path, diags)
	}

	if err := root.apply(&prefs); err != nil {
		return prefs, fmt.Errorf("invalid preferences file %s: %w", path, err)
	}
	if err := prefs.Validate(); err != nil {
		return prefs, fmt.Errorf("invalid preferences file %s: %w", path, err)
	}

	logger.Debug("Preferences loaded.", "path", path, "animation_enabled", prefs.AnimationEnabled, "digest", prefs.Digest)
	return prefs, nil
}

func (r *fileRoot) apply(p *Preferences) error {
	if r.AnimationEnabled != nil {
		p.AnimationEnabled = *r.AnimationEnabled
	}
	if r.StepDelay != nil {
		d, err := time.ParseDuration(*r.StepDelay)
		if err != nil {
			return fmt.Errorf("step_delay: %w", err)
		}
		p.StepDelay = d
	}
	if r.Digest != nil {
		p.Digest = *r.Digest
	}
	if r.Log != nil {
		setString(&p.Log.Level, r.Log.Level)
		setString(&p.Log.Format, r.Log.Format)
	}
	if r.Server != nil {
		setString(&p.Server.Address, r.Server.Address)
		setString(&p.Server.HealthcheckPath, r.Server.HealthcheckPath)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Encode renders preferences as HCL.
func Encode(p Preferences) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("animation_enabled", cty.BoolVal(p.AnimationEnabled))
	body.SetAttributeValue("step_delay", cty.StringVal(p.StepDelay.String()))
	body.SetAttributeValue("digest", cty.StringVal(p.Digest))

	body.AppendNewline()
	logBody := body.AppendNewBlock("log", nil).Body()
	logBody.SetAttributeValue("level", cty.StringVal(p.Log.Level))
	logBody.SetAttributeValue("format", cty.StringVal(p.Log.Format))

	body.AppendNewline()
	serverBody := body.AppendNewBlock("server", nil).Body()
	serverBody.SetAttributeValue("address", cty.StringVal(p.Server.Address))
	serverBody.SetAttributeValue("healthcheck_path", cty.StringVal(p.Server.HealthcheckPath))

	return f.Bytes()
}

// Save writes preferences to path, creating the parent directory if needed.
// The file is replaced atomically.
func Save(ctx context.Context, path string, p Preferences) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir preferences dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, Encode(p), 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Preferences saved.", "path", path)
	return nil
}

// SetAnimation loads the preferences at path, sets AnimationEnabled and saves
// them back.
func SetAnimation(ctx context.Context, path string, enabled bool) (Preferences, error) {
	prefs, err := Load(ctx, path)
	if err != nil {
		return prefs, err
	}
	prefs.AnimationEnabled = enabled
	if err := Save(ctx, path, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// DefaultPath returns the preferences file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "kunyue", "preferences.hcl"), nil
}
