package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/config"
)

// envPrefix namespaces the variables read by the CLI.
const envPrefix = "MD2DOCX_"

// Recognized environment variables.
const (
	envConfig         = envPrefix + "CONFIG"
	envTemplate       = envPrefix + "TEMPLATE"
	envAssetPath      = envPrefix + "ASSET_PATH"
	envInputDir       = envPrefix + "INPUT_DIR"
	envOutputDir      = envPrefix + "OUTPUT_DIR"
	envTabWidth       = envPrefix + "TAB_WIDTH"
	envHighlightStyle = envPrefix + "HIGHLIGHT_STYLE"
)

var knownEnvVars = map[string]bool{
	envConfig:         true,
	envTemplate:       true,
	envAssetPath:      true,
	envInputDir:       true,
	envOutputDir:      true,
	envTabWidth:       true,
	envHighlightStyle: true,
}

// envSettings holds values read from MD2DOCX_* variables.
type envSettings struct {
	ConfigPath     string
	Template       string
	AssetPath      string
	InputDir       string
	OutputDir      string
	TabWidth       int // 0 when unset or unparsable
	HighlightStyle string
}

// loadEnvSettings reads the recognized variables through getenv.
func loadEnvSettings(getenv func(string) string) *envSettings {
	s := &envSettings{
		ConfigPath:     getenv(envConfig),
		Template:       getenv(envTemplate),
		AssetPath:      getenv(envAssetPath),
		InputDir:       getenv(envInputDir),
		OutputDir:      getenv(envOutputDir),
		HighlightStyle: getenv(envHighlightStyle),
	}
	if v := getenv(envTabWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.TabWidth = n
		}
	}
	return s
}

// warnUnknownEnvVars prints a warning for each unrecognized MD2DOCX_* variable.
// Catches typos like MD2DOCX_TEMPLTE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvSettings fills config fields the config file left empty.
// Precedence is: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by mergeFlags).
func applyEnvSettings(env *envSettings, cfg *config.Config) {
	if env.Template != "" && cfg.Template.Name == "" {
		cfg.Template.Name = env.Template
	}
	if env.AssetPath != "" && cfg.Template.BasePath == "" {
		cfg.Template.BasePath = env.AssetPath
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.TabWidth != 0 && cfg.Markdown.TabWidth == config.DefaultConfig().Markdown.TabWidth {
		cfg.Markdown.TabWidth = env.TabWidth
	}
	if env.HighlightStyle != "" {
		cfg.Code.Highlight = true
		if cfg.Code.Style == "" || cfg.Code.Style == config.DefaultConfig().Code.Style {
			cfg.Code.Style = env.HighlightStyle
		}
	}
}
