package main

// Notes:
// - loadEnvSettings: lookups go through an injected getenv, so tests run in
//   parallel without t.Setenv. Invalid tab widths are ignored, not errors.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvSettings: env fills only what the config file left at its default.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvSettings - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvSettings(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MD2DOCX_CONFIG":          "/etc/md2docx.yaml",
		"MD2DOCX_TEMPLATE":        "report",
		"MD2DOCX_ASSET_PATH":      "/srv/assets",
		"MD2DOCX_INPUT_DIR":       "/in",
		"MD2DOCX_OUTPUT_DIR":      "/out",
		"MD2DOCX_TAB_WIDTH":       "2",
		"MD2DOCX_HIGHLIGHT_STYLE": "monokai",
	}
	got := loadEnvSettings(func(k string) string { return vars[k] })

	want := &envSettings{
		ConfigPath:     "/etc/md2docx.yaml",
		Template:       "report",
		AssetPath:      "/srv/assets",
		InputDir:       "/in",
		OutputDir:      "/out",
		TabWidth:       2,
		HighlightStyle: "monokai",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvSettings() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvSettings_InvalidTabWidth(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"abc", "-1", "0"} {
		got := loadEnvSettings(func(k string) string {
			if k == "MD2DOCX_TAB_WIDTH" {
				return v
			}
			return ""
		})
		if got.TabWidth != 0 {
			t.Errorf("TabWidth for %q = %d, want 0", v, got.TabWidth)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"MD2DOCX_TEMPLTE=report",
		"MD2DOCX_TEMPLATE=report",
		"HOME=/root",
		"MD2PDF_STYLE=x",
	})

	out := buf.String()
	if !strings.Contains(out, "MD2DOCX_TEMPLTE") {
		t.Errorf("expected warning for MD2DOCX_TEMPLTE, got %q", out)
	}
	if strings.Contains(out, "MD2DOCX_TEMPLATE ") || strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one warning, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvSettings - Priority behavior
// ---------------------------------------------------------------------------

func TestApplyEnvSettings(t *testing.T) {
	t.Parallel()

	env := &envSettings{
		Template:       "report",
		AssetPath:      "/srv/assets",
		InputDir:       "/in",
		OutputDir:      "/out",
		TabWidth:       2,
		HighlightStyle: "monokai",
	}

	t.Run("fills defaults", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		applyEnvSettings(env, cfg)

		if cfg.Template.Name != "report" || cfg.Template.BasePath != "/srv/assets" {
			t.Errorf("Template = %+v", cfg.Template)
		}
		if cfg.Input.DefaultDir != "/in" || cfg.Output.DefaultDir != "/out" {
			t.Errorf("Input/Output = %q/%q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if cfg.Markdown.TabWidth != 2 {
			t.Errorf("TabWidth = %d, want 2", cfg.Markdown.TabWidth)
		}
		if !cfg.Code.Highlight || cfg.Code.Style != "monokai" {
			t.Errorf("Code = %+v, want highlight with monokai", cfg.Code)
		}
	})

	t.Run("config file wins", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Template.Name = "memo"
		cfg.Output.DefaultDir = "/docs"
		cfg.Markdown.TabWidth = 8
		cfg.Code.Style = "dracula"
		applyEnvSettings(env, cfg)

		if cfg.Template.Name != "memo" {
			t.Errorf("Template.Name = %q, want memo", cfg.Template.Name)
		}
		if cfg.Output.DefaultDir != "/docs" {
			t.Errorf("Output.DefaultDir = %q, want /docs", cfg.Output.DefaultDir)
		}
		if cfg.Markdown.TabWidth != 8 {
			t.Errorf("TabWidth = %d, want 8", cfg.Markdown.TabWidth)
		}
		if cfg.Code.Style != "dracula" {
			t.Errorf("Code.Style = %q, want dracula", cfg.Code.Style)
		}
	})
}
