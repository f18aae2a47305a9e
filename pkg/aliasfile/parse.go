// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads and parses the alias document at path. The document must
// carry a .toml extension; anything else is rejected before reading.
func Parse(path string) (*Manifest, error) {
	if !strings.EqualFold(filepath.Ext(path), DocumentExt) {
		return nil, fmt.Errorf("unsupported alias document format %s; expected a %s file", path, DocumentExt)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias document %s: %w", path, err)
	}

	loc, err := NewSourceLocator(path)
	if err != nil {
		return nil, err
	}

	return ParseBytes(data, loc)
}

// ParseBytes parses alias document content. A leading UTF-8 byte-order
// marker is stripped before decoding. Validation is fail-fast: the first
// violated rule rejects the whole document and no partial Manifest is ever
// produced. Unknown top-level keys are ignored for forward compatibility.
func ParseBytes(data []byte, loc SourceLocator) (*Manifest, error) {
	var raw rawDocument
	if err := toml.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &raw); err != nil {
		return nil, &ParseError{Path: loc.Path, Err: err}
	}

	execValue, err := ValidatePathLike("exec", raw.Exec)
	if err != nil {
		return nil, err
	}
	if err := ValidateValues("args", raw.Args); err != nil {
		return nil, err
	}
	env, err := NormalizeEnvMap("env", raw.Env)
	if err != nil {
		return nil, err
	}
	envRemove, err := NormalizeRemoveKeys("env_remove", raw.EnvRemove)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Exec:      resolveExecPath(loc.Dir, execValue),
		Args:      raw.Args,
		Env:       env,
		EnvRemove: envRemove,
	}

	if raw.Journal != nil {
		journal, err := parseJournal(raw.Journal)
		if err != nil {
			return nil, err
		}
		m.Journal = journal
	}
	if raw.Reconcile != nil {
		reconcile, err := parseReconcile(raw.Reconcile, loc.Dir)
		if err != nil {
			return nil, err
		}
		m.Reconcile = reconcile
	}
	if raw.Bashcomp != nil {
		bashcomp, err := parseBashcomp(raw.Bashcomp, loc.Dir)
		if err != nil {
			return nil, err
		}
		m.Bashcomp = bashcomp
	}

	return m, nil
}

func parseJournal(raw *rawJournal) (*JournalConfig, error) {
	namespace, err := RequireNonBlankNulFree("journal.namespace", raw.Namespace)
	if err != nil {
		return nil, err
	}
	// Blank identifiers are treated as unset at parse time; only a NUL is
	// an error here.
	identifier := strings.TrimSpace(raw.Identifier)
	if strings.ContainsRune(identifier, 0) {
		return nil, &ValidationError{Field: "journal.identifier", Violation: ViolationNulByte}
	}
	return &JournalConfig{
		Namespace:  namespace,
		Stderr:     raw.Stderr,
		Identifier: identifier,
		Ensure:     raw.Ensure,
		UserScoped: raw.UserScoped,
	}, nil
}

func parseReconcile(raw *rawReconcile, baseDir string) (*ReconcileConfig, error) {
	script, err := ValidatePathLike("reconcile.script", raw.Script)
	if err != nil {
		return nil, err
	}
	function := strings.TrimSpace(raw.Function)
	if function == "" {
		function = DefaultReconcileFunction
	} else if strings.ContainsRune(function, 0) {
		return nil, &ValidationError{Field: "reconcile.function", Violation: ViolationNulByte}
	}
	return &ReconcileConfig{
		Script:   resolveScriptPath(baseDir, script),
		Function: function,
	}, nil
}

func parseBashcomp(raw *rawBashcomp, baseDir string) (*BashcompConfig, error) {
	out := &BashcompConfig{
		Disabled:    raw.Disabled,
		Passthrough: raw.Passthrough,
	}

	if strings.TrimSpace(raw.Script) != "" {
		script, err := ValidatePathLike("bashcomp.script", raw.Script)
		if err != nil {
			return nil, err
		}
		out.Script = resolveScriptPath(baseDir, script)
	}
	if strings.TrimSpace(raw.HookScript) != "" {
		hook, err := ValidatePathLike("bashcomp.hook_script", raw.HookScript)
		if err != nil {
			return nil, err
		}
		out.HookScript = resolveScriptPath(baseDir, hook)
	}
	if function := strings.TrimSpace(raw.HookFunction); function != "" {
		if strings.ContainsRune(function, 0) {
			return nil, &ValidationError{Field: "bashcomp.hook_function", Violation: ViolationNulByte}
		}
		out.HookFunction = function
	}

	// Cross-field rule: a hook function is meaningless without a script to
	// load it from.
	if out.HookFunction != "" && out.HookScript == "" {
		return nil, &ValidationError{Field: "bashcomp.hook_function", Violation: ViolationBlank,
			Detail: "requires bashcomp.hook_script"}
	}

	return out, nil
}

// resolveExecPath turns a validated exec value into its final form:
// absolute paths pass through, path-notation values are joined to the
// source directory, and bare names are resolved through PATH (falling back
// to the bare name so the launcher reports the lookup failure).
func resolveExecPath(baseDir, execValue string) string {
	if filepath.IsAbs(execValue) {
		return execValue
	}
	if looksLikeRelativePath(execValue) {
		return filepath.Join(baseDir, execValue)
	}
	if found, err := exec.LookPath(execValue); err == nil {
		return found
	}
	return execValue
}

func resolveScriptPath(baseDir, script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	return filepath.Join(baseDir, script)
}

// rawDocument is the TOML shape of an alias document before validation.
// Unknown keys are dropped by the decoder.
type rawDocument struct {
	Exec      string            `toml:"exec"`
	Args      []string          `toml:"args"`
	Env       map[string]string `toml:"env"`
	EnvRemove []string          `toml:"env_remove"`
	Journal   *rawJournal       `toml:"journal"`
	Reconcile *rawReconcile     `toml:"reconcile"`
	Bashcomp  *rawBashcomp      `toml:"bashcomp"`
}

type rawJournal struct {
	Namespace  string `toml:"namespace"`
	Stderr     bool   `toml:"stderr"`
	Identifier string `toml:"identifier"`
	Ensure     bool   `toml:"ensure"`
	UserScoped bool   `toml:"user_scoped"`
}

type rawReconcile struct {
	Script   string `toml:"script"`
	Function string `toml:"function"`
}

type rawBashcomp struct {
	Disabled     bool   `toml:"disabled"`
	Passthrough  bool   `toml:"passthrough"`
	Script       string `toml:"script"`
	HookScript   string `toml:"hook_script"`
	HookFunction string `toml:"hook_function"`
}
