// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/gmt/chopper/internal/cache"
	"github.com/gmt/chopper/internal/config"
	"github.com/gmt/chopper/internal/issue"
	"github.com/gmt/chopper/internal/reconcile"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// Exit codes per failure kind, so shell integrations can react to the
// class of failure without parsing messages.
const (
	exitFailure    = 1
	exitValidation = 2
	exitParse      = 3
	exitPatch      = 4
	exitCache      = 5
)

// classify maps a pipeline error onto its exit code and issue guidance.
func classify(err error) (int, issue.Id) {
	var validationErr *aliasfile.ValidationError
	var parseErr *aliasfile.ParseError
	var patchErr *reconcile.Error
	var cacheErr *cache.Error
	var notFoundErr *config.NotFoundError
	var loadErr *config.LoadError

	switch {
	case errors.As(err, &patchErr):
		return exitPatch, issue.PatchRejectedId
	case errors.As(err, &validationErr):
		return exitValidation, issue.AliasValidationErrorId
	case errors.As(err, &parseErr):
		return exitParse, issue.AliasDocParseErrorId
	case errors.As(err, &cacheErr):
		return exitCache, issue.CacheDegradedId
	case errors.As(err, &notFoundErr):
		return exitFailure, issue.AliasNotFoundId
	case errors.As(err, &loadErr):
		return exitFailure, issue.ConfigLoadFailedId
	default:
		return exitFailure, 0
	}
}

// reportError prints err with styling and, in verbose mode, the rendered
// guidance for its issue kind. Actionable errors print their suggestions;
// everything else prints the one-line message. It returns the ExitError
// for RunE.
func reportError(w io.Writer, err error) error {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+actionable.Format(verbose))
	} else {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+err.Error())
	}

	code, id := classify(err)
	if verbose && id != 0 {
		if known := issue.Lookup(id); known != nil {
			if rendered, renderErr := known.Render(""); renderErr == nil {
				fmt.Fprintln(w, rendered)
			}
		}
	}

	return &ExitError{Code: code, Err: err}
}
