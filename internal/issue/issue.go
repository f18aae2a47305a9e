// SPDX-License-Identifier: EPL-2.0

// Package issue maps chopper failure conditions to user-facing guidance.
// Each Id has a markdown help text rendered through glamour when a front
// end wants more than the one-line error message.
package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies one failure condition.
type Id int

const (
	AliasNotFoundId Id = iota + 1
	AliasDocParseErrorId
	AliasValidationErrorId
	PatchRejectedId
	CacheDegradedId
	ConfigLoadFailedId
)

// MarkdownMsg is rendered help text in markdown form.
type MarkdownMsg string

// Issue pairs a failure condition with its rendered guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// Id returns the issue's identifier.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw markdown guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render returns the guidance rendered for the terminal using the given
// glamour style path ("" for auto).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	aliasNotFoundIssue = &Issue{
		id: AliasNotFoundId,
		mdMsg: `
# Alias not found!

No alias document exists for that name in the chopper config directory.

## Search locations (in order of precedence):
1. ` + "`<config>/aliases/<name>.toml`" + `
2. ` + "`<config>/<name>.toml`" + `

## Things you can try:
- List configured aliases:
~~~
$ chopper list
~~~
- Create the document:
~~~toml
# <config>/aliases/<name>.toml
exec = "/usr/bin/mytool"
args = ["--preset", "default"]
~~~
- Point chopper at a different config directory via CHOPPER_CONFIG_DIR.`,
	}

	aliasDocParseErrorIssue = &Issue{
		id: AliasDocParseErrorId,
		mdMsg: `
# Failed to parse alias document!

The TOML document is malformed and was rejected before validation.

## Things you can try:
- Check the error message for the offending line
- Validate without executing:
~~~
$ chopper validate <alias>
~~~

## Example of a valid alias document:
~~~toml
exec = "./bin/tool"
args = ["-v"]

[env]
MODE = "fast"

[reconcile]
script = "patch.js"
function = "reconcile"
~~~`,
	}

	aliasValidationErrorIssue = &Issue{
		id: AliasValidationErrorId,
		mdMsg: `
# Invalid alias document!

The document parsed but one of its fields broke a structural rule. The
error names the offending field.

## Rules worth knowing:
- ` + "`exec`" + ` cannot be ` + "`.`" + `/` + "`..`" + `, end in a path separator, or end
  with a dot path segment
- env keys cannot contain ` + "`=`" + ` and cannot collide after trimming
- no field accepts embedded NUL bytes`,
	}

	patchRejectedIssue = &Issue{
		id: PatchRejectedId,
		mdMsg: `
# Runtime patch rejected!

The reconcile script returned a patch that is not structurally valid, so
the invocation was aborted before any merging happened.

## A valid patch object carries only these keys:
~~~
append_args   replace_args   set_env   remove_env
~~~

## Things you can try:
- Check the script for typos in patch keys
- Bypass the script temporarily:
~~~
$ CHOPPER_DISABLE_RECONCILE=1 chopper resolve <alias>
~~~`,
	}

	cacheDegradedIssue = &Issue{
		id: CacheDegradedId,
		mdMsg: `
# Cache persistence degraded

Writing the manifest cache failed (permissions, disk full). Resolution
still succeeded from the freshly parsed document; only re-parse avoidance
is lost until the cache directory is writable again.

## Things you can try:
- Check permissions on the cache directory:
~~~
$ chopper cache dir
~~~
- Point the cache elsewhere via CHOPPER_CACHE_DIR.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load settings

config.toml exists but could not be decoded. Chopper refuses to guess so
a typo cannot silently flip cache or reconcile behavior.

## Recognized settings:
~~~toml
[cache]
disabled = false

[reconcile]
disabled = false

[ui]
verbose = false
~~~`,
	}

	registry = map[Id]*Issue{
		AliasNotFoundId:        aliasNotFoundIssue,
		AliasDocParseErrorId:   aliasDocParseErrorIssue,
		AliasValidationErrorId: aliasValidationErrorIssue,
		PatchRejectedId:        patchRejectedIssue,
		CacheDegradedId:        cacheDegradedIssue,
		ConfigLoadFailedId:     configLoadFailedIssue,
	}
)

// Lookup returns the Issue for id, or nil if unknown.
func Lookup(id Id) *Issue {
	return registry[id]
}

// Ids returns all registered issue identifiers, sorted.
func Ids() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
