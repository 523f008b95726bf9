// Package resolver implements the tiered Flow definition resolution engine.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxDelegationDepth bounds how many times resolution may move to an @types package.
const maxDelegationDepth = 1

// attempt tries one tier for a package.
// A *domain.TierError selects the next tier; any other error aborts.
type attempt func(ctx context.Context, pkg, key string) (domain.Resolution, error)

// Resolver assigns each package to exactly one tier of the lockfile.
type Resolver struct {
	manifests ports.ManifestReader
	registry  ports.TypeRegistry
	converter ports.Converter
	installer ports.PackageInstaller
	artifacts ports.ArtifactStore
	logger    ports.Logger
	telemetry ports.Telemetry

	flowTypedDir string
}

// New creates a new Resolver.
func New(
	manifests ports.ManifestReader,
	registry ports.TypeRegistry,
	converter ports.Converter,
	installer ports.PackageInstaller,
	artifacts ports.ArtifactStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
	flowTypedDir string,
) *Resolver {
	if flowTypedDir == "" {
		flowTypedDir = domain.FlowTypedDirName
	}
	return &Resolver{
		manifests:    manifests,
		registry:     registry,
		converter:    converter,
		installer:    installer,
		artifacts:    artifacts,
		logger:       logger,
		telemetry:    telemetry,
		flowTypedDir: flowTypedDir,
	}
}

// Resolve finds a Flow definition for packageName and records the outcome in lock.
// Only fatal failures are returned; a package nothing could resolve keeps its
// custom placeholder and is reported as unresolved.
func (r *Resolver) Resolve(ctx context.Context, lock *domain.Lockfile, packageName string) (domain.Resolution, error) {
	return r.resolve(ctx, lock, packageName, 0)
}

func (r *Resolver) resolve(
	ctx context.Context,
	lock *domain.Lockfile,
	pkg string,
	depth int,
) (res domain.Resolution, err error) {
	key := domain.CanonicalKey(pkg)
	if _, _, ok := lock.TierOf(key); !ok {
		lock.SetTier(domain.TierCustom, key, "")
	}

	ctx, vertex := r.telemetry.Record(ctx, pkg)
	defer func() {
		vertex.Complete(err)
	}()

	for _, try := range []attempt{r.native, r.community, r.convert} {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Unresolved(pkg), ctxErr
		}

		outcome, tryErr := try(ctx, pkg, key)
		if tryErr == nil {
			r.assign(lock, outcome)
			return outcome, nil
		}

		var tierErr *domain.TierError
		if !errors.As(tryErr, &tierErr) || tierErr.Fatal() {
			return domain.Unresolved(pkg), tryErr
		}
		r.skip(vertex, tierErr)
	}

	if domain.IsTypesPackage(pkg) || depth >= maxDelegationDepth {
		return domain.Unresolved(pkg), nil
	}

	return r.delegate(ctx, lock, pkg, depth)
}

// native accepts a package that ships its own index.js.flow.
func (r *Resolver) native(ctx context.Context, pkg, _ string) (domain.Resolution, error) {
	if _, err := r.manifests.ResolveFile(ctx, pkg, domain.NativeFlowEntry); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrNativeTypesNotFound.Error()), "entry", domain.NativeFlowEntry)
		return domain.Resolution{}, domain.NewTierError(domain.FailureNativeTypesNotFound, pkg, err)
	}
	return domain.Resolved(pkg, domain.TierNativeBuiltin, ""), nil
}

// community installs the flow-typed registry definition for key.
func (r *Resolver) community(ctx context.Context, pkg, key string) (domain.Resolution, error) {
	if err := r.registry.Install(ctx, key); err != nil {
		return domain.Resolution{}, domain.NewTierError(domain.FailureRegistryLookup, pkg, err)
	}
	return domain.Resolved(pkg, domain.TierCommunityRegistry, ""), nil
}

// delegate retries resolution with the package's @types counterpart, installing it when absent.
func (r *Resolver) delegate(
	ctx context.Context,
	lock *domain.Lockfile,
	pkg string,
	depth int,
) (domain.Resolution, error) {
	typesName := domain.TypesPackageName(pkg)

	if _, err := r.manifests.Read(ctx, typesName); err != nil {
		r.logger.Debug(fmt.Sprintf("%s is not installed, adding it", typesName))
		if installErr := r.installer.AddDevDependency(ctx, typesName); installErr != nil {
			tierErr := domain.NewTierError(domain.FailureTypesPackageInstall, typesName, installErr)
			r.logger.Debug(tierErr.Error())
			return domain.Unresolved(pkg), nil
		}
	}

	return r.resolve(ctx, lock, typesName, depth+1)
}

func (r *Resolver) assign(lock *domain.Lockfile, res domain.Resolution) {
	lock.SetTier(res.Tier, res.Key, res.Path)
	r.logger.Info(fmt.Sprintf("+ %s (%s)", res.Package, res.Tier))
}

func (r *Resolver) skip(vertex ports.Vertex, tierErr *domain.TierError) {
	msg := tierErr.Error()
	r.logger.Debug(msg)
	vertex.Log(domain.LogLevelDebug, msg)
}
