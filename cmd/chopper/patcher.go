// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/gmt/chopper/internal/reconcile"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// execPatchProvider implements the script-engine contract by running the
// reconcile script as a subprocess: the entry-point function name is the
// single argument, the context object arrives as JSON on stdin, and the
// patch object is expected as JSON on stdout. Empty output means no
// patch. The pipeline validates whatever comes back; this provider only
// transports it.
func execPatchProvider(cfg aliasfile.ReconcileConfig, ctx reconcile.Context) (map[string]any, error) {
	input, err := json.Marshal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reconcile context: %w", err)
	}

	scriptCmd := exec.Command(cfg.Script, cfg.Function)
	scriptCmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	scriptCmd.Stdout = &stdout
	scriptCmd.Stderr = &stderr

	if err := scriptCmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("reconcile script %s failed: %w: %s", cfg.Script, err, stderr.String())
		}
		return nil, fmt.Errorf("reconcile script %s failed: %w", cfg.Script, err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("reconcile function `%s` in %s must return a JSON object: %w",
			cfg.Function, cfg.Script, err)
	}
	return raw, nil
}
