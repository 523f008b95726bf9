package domain

import "fmt"

// FailureKind classifies why a tier attempt did not produce a definition.
type FailureKind string

const (
	// FailureManifestNotFound means the package is not installed.
	FailureManifestNotFound FailureKind = "manifest_not_found"
	// FailureNativeTypesNotFound means the package ships no index.js.flow.
	FailureNativeTypesNotFound FailureKind = "native_types_not_found"
	// FailureRegistryLookup means flow-typed had no definition.
	FailureRegistryLookup FailureKind = "registry_lookup_failed"
	// FailureTypingsNotFound means no TypeScript entry point could be read.
	FailureTypingsNotFound FailureKind = "typings_not_found"
	// FailureConversion means the converter or formatter rejected the input.
	FailureConversion FailureKind = "conversion_failed"
	// FailureStubGeneration means no stub could be created. It is fatal.
	FailureStubGeneration FailureKind = "stub_generation_failed"
	// FailureTypesPackageInstall means the @types package could not be added.
	FailureTypesPackageInstall FailureKind = "types_package_install_failed"
)

// TierError is the failed outcome of a single tier attempt.
type TierError struct {
	Kind    FailureKind
	Package string
	Err     error
}

// NewTierError creates a TierError for pkg.
func NewTierError(kind FailureKind, pkg string, err error) *TierError {
	return &TierError{Kind: kind, Package: pkg, Err: err}
}

func (e *TierError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Package, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Package, e.Kind, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the failure must abort the run instead of selecting the next tier.
func (e *TierError) Fatal() bool {
	return e.Kind == FailureStubGeneration
}

// Resolution is the outcome of resolving one package.
type Resolution struct {
	// Package is the name that was resolved. After delegation it is the @types name.
	Package string

	// Key is the canonical lockfile key.
	Key string

	// Tier is the tier assigned; TierCustom when nothing resolved.
	Tier Tier

	// Path is the generated file path, if any.
	Path string

	// Resolved is false when the package kept its pending placeholder.
	Resolved bool
}

// Unresolved returns the outcome for a package that kept its placeholder.
func Unresolved(pkg string) Resolution {
	return Resolution{Package: pkg, Key: CanonicalKey(pkg), Tier: TierCustom}
}

// Resolved returns the outcome for a package assigned to tier.
func Resolved(pkg string, tier Tier, path string) Resolution {
	return Resolution{Package: pkg, Key: CanonicalKey(pkg), Tier: tier, Path: path, Resolved: true}
}
