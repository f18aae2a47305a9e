// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Document is the mutable authored form of an alias document, used by the
// administration commands to create and update documents on disk. Unlike
// Manifest nothing is resolved: exec and script paths stay exactly as
// written, so a loaded document can be edited and saved back without
// baking in resolution results.
type Document struct {
	Exec      string             `toml:"exec"`
	Args      []string           `toml:"args,omitempty"`
	Env       map[string]string  `toml:"env,omitempty"`
	EnvRemove []string           `toml:"env_remove,omitempty"`
	Journal   *DocumentJournal   `toml:"journal,omitempty"`
	Reconcile *DocumentReconcile `toml:"reconcile,omitempty"`
	Bashcomp  *DocumentBashcomp  `toml:"bashcomp,omitempty"`
}

// DocumentJournal mirrors the journal sub-table. All fields are carried so
// an edit of one field round-trips the rest untouched.
type DocumentJournal struct {
	Namespace  string `toml:"namespace"`
	Stderr     bool   `toml:"stderr"`
	Identifier string `toml:"identifier,omitempty"`
	Ensure     bool   `toml:"ensure,omitempty"`
	UserScoped bool   `toml:"user_scoped,omitempty"`
}

// DocumentReconcile mirrors the reconcile sub-table.
type DocumentReconcile struct {
	Script   string `toml:"script"`
	Function string `toml:"function,omitempty"`
}

// DocumentBashcomp mirrors the bashcomp sub-table.
type DocumentBashcomp struct {
	Disabled     bool   `toml:"disabled,omitempty"`
	Passthrough  bool   `toml:"passthrough,omitempty"`
	Script       string `toml:"script,omitempty"`
	HookScript   string `toml:"hook_script,omitempty"`
	HookFunction string `toml:"hook_function,omitempty"`
}

// Validate runs the parse-time validators against the authored values, so
// a saved document is guaranteed to parse on the next invocation. Trimming
// is not enforced here; the parser normalizes on read.
func (d *Document) Validate() error {
	if _, err := ValidatePathLike("exec", d.Exec); err != nil {
		return err
	}
	if err := ValidateValues("args", d.Args); err != nil {
		return err
	}
	if _, err := NormalizeEnvMap("env", d.Env); err != nil {
		return err
	}
	if _, err := NormalizeRemoveKeys("env_remove", d.EnvRemove); err != nil {
		return err
	}
	if d.Journal != nil {
		if _, err := RequireNonBlankNulFree("journal.namespace", d.Journal.Namespace); err != nil {
			return err
		}
		if err := ValidateValue("journal.identifier", d.Journal.Identifier); err != nil {
			return err
		}
	}
	if d.Reconcile != nil {
		if _, err := ValidatePathLike("reconcile.script", d.Reconcile.Script); err != nil {
			return err
		}
		if err := ValidateValue("reconcile.function", d.Reconcile.Function); err != nil {
			return err
		}
	}
	if d.Bashcomp != nil {
		for field, script := range map[string]string{
			"bashcomp.script":      d.Bashcomp.Script,
			"bashcomp.hook_script": d.Bashcomp.HookScript,
		} {
			if script == "" {
				continue
			}
			if _, err := ValidatePathLike(field, script); err != nil {
				return err
			}
		}
		if err := ValidateValue("bashcomp.hook_function", d.Bashcomp.HookFunction); err != nil {
			return err
		}
		if d.Bashcomp.HookFunction != "" && d.Bashcomp.HookScript == "" {
			return &ValidationError{Field: "bashcomp.hook_function", Violation: ViolationBlank,
				Detail: "requires bashcomp.hook_script"}
		}
	}
	return nil
}

// LoadDocument reads the alias document at path in its authored form. The
// document is validated but not normalized or resolved.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias document %s: %w", path, err)
	}

	var doc Document
	if err := toml.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocument validates doc and writes it to path as TOML. An invalid
// document is never written.
func SaveDocument(path string, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize alias document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write alias document %s: %w", path, err)
	}
	return nil
}
