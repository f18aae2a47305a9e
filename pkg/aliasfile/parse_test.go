// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestParse_FullDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "deploy.toml", `
exec = "/usr/bin/deploy"
args = ["--región", "eu-west-1"]
env_remove = ["AWS_PROFILE", " AWS_PROFILE ", "SSO_TOKEN"]

[env]
DEPLOY_ENV = "prod"
" PADDED " = "trimmed key"

[journal]
namespace = "deploy"
stderr = true
identifier = "  "

[reconcile]
script = "hooks/reconcile.sh"

[bashcomp]
hook_script = "/opt/completions/deploy.sh"
hook_function = "complete_deploy"
`)

	m, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Exec != "/usr/bin/deploy" {
		t.Errorf("Exec = %q", m.Exec)
	}
	if want := []string{"--región", "eu-west-1"}; !reflect.DeepEqual(m.Args, want) {
		t.Errorf("Args = %v, want %v", m.Args, want)
	}
	if m.Env["DEPLOY_ENV"] != "prod" || m.Env["PADDED"] != "trimmed key" {
		t.Errorf("Env = %v", m.Env)
	}
	if want := []string{"AWS_PROFILE", "SSO_TOKEN"}; !reflect.DeepEqual(m.EnvRemove, want) {
		t.Errorf("EnvRemove = %v, want %v", m.EnvRemove, want)
	}

	if m.Journal == nil || m.Journal.Namespace != "deploy" || !m.Journal.Stderr {
		t.Fatalf("Journal = %+v", m.Journal)
	}
	if m.Journal.Identifier != "" {
		t.Errorf("blank journal identifier should parse as unset, got %q", m.Journal.Identifier)
	}

	if m.Reconcile == nil {
		t.Fatal("Reconcile = nil")
	}
	if want := filepath.Join(dir, "hooks/reconcile.sh"); m.Reconcile.Script != want {
		t.Errorf("Reconcile.Script = %q, want %q", m.Reconcile.Script, want)
	}
	if m.Reconcile.Function != DefaultReconcileFunction {
		t.Errorf("Reconcile.Function = %q, want default", m.Reconcile.Function)
	}

	if m.Bashcomp == nil || m.Bashcomp.HookScript != "/opt/completions/deploy.sh" || m.Bashcomp.HookFunction != "complete_deploy" {
		t.Errorf("Bashcomp = %+v", m.Bashcomp)
	}

	// A re-parsed manifest is already in stored form.
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() on fresh parse = %v", err)
	}
}

func TestParse_RejectsNonTOMLExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "gs.yaml", `exec = "/bin/true"`)
	if _, err := Parse(path); err == nil {
		t.Fatal("Parse() accepted a .yaml document")
	}
}

func TestParse_ExtensionCaseInsensitive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "gs.TOML", `exec = "/bin/true"`)
	if _, err := Parse(path); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}

func TestParseBytes_StripsBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`exec = "/bin/true"`)...)
	m, err := ParseBytes(data, SourceLocator{Path: "gs.toml", Dir: "/tmp"})
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if m.Exec != "/bin/true" {
		t.Errorf("Exec = %q", m.Exec)
	}
}

func TestParseBytes_IgnoresUnknownTopLevelKeys(t *testing.T) {
	t.Parallel()

	m, err := ParseBytes([]byte(`
exec = "/bin/true"
future_feature = "ignored"

[future_table]
x = 1
`), SourceLocator{Path: "gs.toml", Dir: "/tmp"})
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if m.Exec != "/bin/true" {
		t.Errorf("Exec = %q", m.Exec)
	}
}

func TestParseBytes_MalformedTOML(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes([]byte(`exec = [unterminated`), SourceLocator{Path: "gs.toml", Dir: "/tmp"})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("ParseBytes() = %v, want *ParseError", err)
	}
	if pe.Path != "gs.toml" {
		t.Errorf("ParseError.Path = %q", pe.Path)
	}
}

func TestParseBytes_FailFastValidation(t *testing.T) {
	t.Parallel()

	loc := SourceLocator{Path: "gs.toml", Dir: "/tmp"}
	tests := []struct {
		name string
		doc  string
		viol Violation
	}{
		{name: "missing exec", doc: `args = ["x"]`, viol: ViolationBlank},
		{name: "blank exec", doc: `exec = "   "`, viol: ViolationBlank},
		{name: "exec trailing slash", doc: `exec = "bin/"`, viol: ViolationPathShape},
		{name: "env key with equals", doc: "exec = \"/bin/true\"\n[env]\n\"A=B\" = \"v\"", viol: ViolationContainsEquals},
		{name: "env value with nul", doc: "exec = \"/bin/true\"\n[env]\nKEY = \"bad\\u0000\"", viol: ViolationNulByte},
		{name: "env_remove entry with equals", doc: "exec = \"/bin/true\"\nenv_remove = [\"A=B\"]", viol: ViolationContainsEquals},
		{name: "arg with nul", doc: "exec = \"/bin/true\"\nargs = [\"bad\\u0000arg\"]", viol: ViolationNulByte},
		{name: "journal without namespace", doc: "exec = \"/bin/true\"\n[journal]\nstderr = true", viol: ViolationBlank},
		{name: "reconcile without script", doc: "exec = \"/bin/true\"\n[reconcile]\nfunction = \"patch\"", viol: ViolationBlank},
		{name: "hook function without script", doc: "exec = \"/bin/true\"\n[bashcomp]\nhook_function = \"f\"", viol: ViolationBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseBytes([]byte(tt.doc), loc)
			if m != nil {
				t.Fatal("ParseBytes() returned a partial manifest alongside an error")
			}
			if !isViolation(err, tt.viol) {
				t.Errorf("ParseBytes() = %v, want violation %d", err, tt.viol)
			}
		})
	}
}

func TestParseBytes_ExecResolution(t *testing.T) {
	t.Parallel()

	loc := SourceLocator{Path: "/etc/chopper/aliases/gs.toml", Dir: "/etc/chopper/aliases"}

	m, err := ParseBytes([]byte(`exec = "./bin/tool"`), loc)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if want := filepath.Join("/etc/chopper/aliases", "bin/tool"); m.Exec != want {
		t.Errorf("relative exec = %q, want %q", m.Exec, want)
	}

	m, err = ParseBytes([]byte(`exec = "/usr/local/bin/tool"`), loc)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if m.Exec != "/usr/local/bin/tool" {
		t.Errorf("absolute exec = %q", m.Exec)
	}

	// A bare name that cannot be found on PATH stays bare.
	m, err = ParseBytes([]byte(`exec = "chopper-test-no-such-binary"`), loc)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if m.Exec != "chopper-test-no-such-binary" {
		t.Errorf("unresolvable bare exec = %q", m.Exec)
	}
}

func TestParseBytes_ReconcileFunctionOverride(t *testing.T) {
	t.Parallel()

	m, err := ParseBytes([]byte(`
exec = "/bin/true"
[reconcile]
script = "/opt/hooks/patch.sh"
function = "  custom_patch  "
`), SourceLocator{Path: "gs.toml", Dir: "/tmp"})
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if m.Reconcile.Function != "custom_patch" {
		t.Errorf("Function = %q, want %q", m.Reconcile.Function, "custom_patch")
	}
}
