package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunConfigCmd
// ---------------------------------------------------------------------------

func TestRunConfigCmd_Defaults(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(nil)
	if code := runMain([]string{"md2docx", "config"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	got := &config.Config{}
	if err := yamlutil.UnmarshalStrict(stdout.Bytes(), got); err != nil {
		t.Fatalf("output is not a valid config: %v\n%s", err, stdout)
	}
	if diff := cmp.Diff(config.DefaultConfig(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("printed config mismatch (-want +got):\n%s", diff)
	}
}

func TestRunConfigCmd_EnvAndFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "team.yaml", "template:\n  name: memo\n")
	env, stdout, stderr := testEnv(map[string]string{
		"MD2DOCX_CONFIG":     cfgPath,
		"MD2DOCX_TEMPLATE":   "report",
		"MD2DOCX_OUTPUT_DIR": "/out",
	})

	if code := runMain([]string{"md2docx", "config"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	got := &config.Config{}
	if err := yamlutil.UnmarshalStrict(stdout.Bytes(), got); err != nil {
		t.Fatalf("output is not a valid config: %v", err)
	}
	if got.Template.Name != "memo" {
		t.Errorf("Template.Name = %q, want memo (file wins over env)", got.Template.Name)
	}
	if got.Output.DefaultDir != "/out" {
		t.Errorf("Output.DefaultDir = %q, want /out from env", got.Output.DefaultDir)
	}
}

func TestRunConfigCmd_NotFound(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(nil)
	code := runMain([]string{"md2docx", "config", "-c", "no-such-md2docx-config"}, env)

	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: use --config") {
		t.Errorf("stderr = %q, want config hint", stderr)
	}
}
