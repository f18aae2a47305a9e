// SPDX-License-Identifier: MPL-2.0

// Package resolve runs the manifest resolution pipeline: load-or-heal the
// cached manifest, invoke the optional runtime patch contract, and merge
// everything into the final command.
//
// Error kinds stay distinguishable through the pipeline: callers can
// errors.As for *aliasfile.ValidationError, *aliasfile.ParseError,
// *cache.Error, and *reconcile.Error to map failures to distinct exit
// codes and messages. Cache I/O failures degrade persistence only; the
// invocation proceeds from the freshly parsed manifest.
package resolve

import (
	"github.com/charmbracelet/log"

	"github.com/gmt/chopper/internal/cache"
	"github.com/gmt/chopper/internal/reconcile"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// ResolvedCommand is the final (exec, args, env) triple handed to the
// external launcher. It is constructed exactly once per invocation and
// never mutated afterwards.
type ResolvedCommand struct {
	Exec string
	Args []string
	Env  map[string]string
}

// Environ returns the final environment as a sorted "KEY=VALUE" list.
func (c *ResolvedCommand) Environ() []string {
	return SortedEnviron(c.Env)
}

// Request carries the runtime inputs of one resolution.
type Request struct {
	Alias  aliasfile.Alias
	Source aliasfile.SourceLocator
	// RuntimeArgs are the invocation-time arguments, in supplied order.
	RuntimeArgs []string
	// Environ is the inherited process environment snapshot. The pipeline
	// never reads or mutates the real process environment.
	Environ []string
}

// Resolver wires the pipeline's collaborators. A nil Cache parses the
// source on every invocation; a nil Patcher skips runtime patches.
type Resolver struct {
	Cache   *cache.Manager
	Patcher reconcile.Provider
}

// Resolve runs the full pipeline for one invocation.
func (r *Resolver) Resolve(req Request) (*ResolvedCommand, error) {
	manifest, err := r.LoadManifest(req.Alias, req.Source)
	if err != nil {
		return nil, err
	}
	return r.Merge(manifest, req)
}

// Merge applies the runtime patch contract (if any) and the merge engine
// to an already-loaded manifest. Split out from Resolve so introspection
// tooling can reuse a manifest it obtained earlier.
func (r *Resolver) Merge(manifest *aliasfile.Manifest, req Request) (*ResolvedCommand, error) {
	patch, err := r.patch(manifest, req)
	if err != nil {
		return nil, err
	}

	return &ResolvedCommand{
		Exec: manifest.Exec,
		Args: MergeArgs(manifest.Args, req.RuntimeArgs, patch),
		Env:  MergeEnv(EnvironToMap(req.Environ), manifest.Env, manifest.EnvRemove, patch),
	}, nil
}

// LoadManifest returns the validated manifest for the source document,
// serving from cache when possible and healing stale, corrupt, or invalid
// entries in the same call. This is the "parse + validate only" mode:
// it never touches the merge engine.
func (r *Resolver) LoadManifest(alias aliasfile.Alias, loc aliasfile.SourceLocator) (*aliasfile.Manifest, error) {
	if r.Cache == nil {
		return aliasfile.Parse(loc.Path)
	}

	fp, err := cache.CurrentFingerprint(loc.Path)
	if err != nil {
		return nil, err
	}

	if manifest, outcome := r.Cache.Load(alias, fp); outcome == cache.Hit {
		log.Debug("cache hit", "alias", alias)
		return manifest, nil
	} else if outcome == cache.Invalid {
		log.Debug("cache entry invalid, healing", "alias", alias)
	} else {
		log.Debug("cache miss", "alias", alias)
	}

	return r.Cache.Heal(alias, loc, fp)
}

// Invalidate drops any cached entries for alias. A nil Cache is a no-op.
func (r *Resolver) Invalidate(alias aliasfile.Alias) error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Invalidate(alias)
}

func (r *Resolver) patch(manifest *aliasfile.Manifest, req Request) (*reconcile.Patch, error) {
	if r.Patcher == nil || manifest.Reconcile == nil {
		return nil, nil
	}

	ctx := reconcile.Context{
		RuntimeArgs: req.RuntimeArgs,
		RuntimeEnv:  EnvironToMap(req.Environ),
		AliasArgs:   manifest.Args,
		AliasEnv:    manifest.Env,
	}
	raw, err := r.Patcher(*manifest.Reconcile, ctx)
	if err != nil {
		return nil, &reconcile.Error{Err: err}
	}
	if raw == nil {
		return nil, nil
	}

	patch, err := reconcile.ParsePatch(raw)
	if err != nil {
		return nil, err
	}
	log.Debug("runtime patch applied", "alias_script", manifest.Reconcile.Script)
	return patch, nil
}
