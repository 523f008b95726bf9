// Package app implements the application layer for flowlock.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// PackageResolver resolves one package into the lockfile.
type PackageResolver interface {
	Resolve(ctx context.Context, lock *domain.Lockfile, packageName string) (domain.Resolution, error)
}

// App represents the main application logic.
type App struct {
	projects  ports.ProjectLoader
	locks     ports.LockfileStore
	manifests ports.ManifestReader
	resolver  PackageResolver
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new App instance.
func New(
	projects ports.ProjectLoader,
	locks ports.LockfileStore,
	manifests ports.ManifestReader,
	resolver PackageResolver,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		projects:  projects,
		locks:     locks,
		manifests: manifests,
		resolver:  resolver,
		logger:    log,
		telemetry: telemetry,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Pattern selects single-package mode when set, e.g. "left-pad@^1.3.0".
	Pattern string

	// Out receives the single-package outcome. Defaults to io.Discard.
	Out io.Writer
}

// Run resolves the whole project, or only opts.Pattern when given.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	defer func() {
		if closeErr := a.telemetry.Close(); closeErr != nil {
			a.logger.Warn("failed to close telemetry: " + closeErr.Error())
		}
	}()

	if opts.Pattern != "" {
		out := opts.Out
		if out == nil {
			out = io.Discard
		}
		return a.runSingle(ctx, opts.Pattern, out)
	}
	return a.runBatch(ctx)
}

// runBatch resolves every project dependency in declaration order and persists the lockfile.
func (a *App) runBatch(ctx context.Context) error {
	project, err := a.projects.Load(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}

	lock, err := a.locks.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load lockfile")
	}

	names := project.DependencyNames()
	var summary summary
	for _, name := range names {
		res, err := a.resolver.Resolve(ctx, lock, name)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "resolution aborted"), "package", name)
		}
		summary.add(res)
	}

	if err := a.locks.Save(lock); err != nil {
		return zerr.Wrap(err, "failed to save lockfile")
	}

	a.logger.Info(summary.String())
	return nil
}

// runSingle resolves one package without persisting the lockfile.
func (a *App) runSingle(ctx context.Context, pattern string, out io.Writer) error {
	spec := domain.NormalizePattern(pattern)

	lock, err := a.locks.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load lockfile")
	}

	res, err := a.resolver.Resolve(ctx, lock, spec.Name)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "resolution aborted"), "package", spec.Name)
	}

	switch {
	case !res.Resolved:
		_, err = fmt.Fprintf(out, "%s\tunresolved\n", res.Key)
	case res.Path == "":
		_, err = fmt.Fprintf(out, "%s\t%s\n", res.Key, res.Tier)
	default:
		_, err = fmt.Fprintf(out, "%s\t%s\t%s\n", res.Key, res.Tier, res.Path)
	}
	if err != nil {
		return err
	}

	a.checkRange(ctx, spec)
	return nil
}

// checkRange warns when the installed version falls outside the requested range.
// The range never changes which definition is resolved.
func (a *App) checkRange(ctx context.Context, spec domain.PackageSpecifier) {
	if !spec.HasVersion {
		return
	}

	manifest, err := a.manifests.Read(ctx, spec.Name)
	if err != nil || manifest.Version == "" {
		return
	}

	ok, err := spec.Satisfies(manifest.Version)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("cannot compare %s against %s: %v", manifest.Version, spec.String(), err))
		return
	}
	if !ok {
		a.logger.Warn(fmt.Sprintf("installed %s@%s does not satisfy %s", spec.Name, manifest.Version, spec.Range))
	}
}

// Status writes the lockfile contents as a table.
func (a *App) Status(_ context.Context, w io.Writer) error {
	lock, err := a.locks.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load lockfile")
	}

	entries := lock.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no packages recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PACKAGE\tTIER\tPATH")
	for _, entry := range entries {
		path := entry.Path
		if path == "" {
			path = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Key, entry.Tier, path)
	}
	return tw.Flush()
}

// summary counts batch outcomes per tier.
type summary struct {
	total      int
	tiers      map[domain.Tier]int
	unresolved int
}

func (s *summary) add(res domain.Resolution) {
	s.total++
	if !res.Resolved {
		s.unresolved++
		return
	}
	if s.tiers == nil {
		s.tiers = make(map[domain.Tier]int)
	}
	s.tiers[res.Tier]++
}

func (s *summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "resolved %d packages (", s.total)
	for _, tier := range []domain.Tier{
		domain.TierNativeBuiltin,
		domain.TierCommunityRegistry,
		domain.TierConverted,
		domain.TierStub,
	} {
		fmt.Fprintf(&b, "%s=%d ", tier, s.tiers[tier])
	}
	fmt.Fprintf(&b, "unresolved=%d)", s.unresolved)
	return b.String()
}
