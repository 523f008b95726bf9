package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

const (
	// RangeLatest is the range assumed when a pattern carries no version at all.
	RangeLatest = "latest"

	// RangeAny is the range assumed when a pattern ends with a bare "@".
	RangeAny = "*"
)

// PackageSpecifier is a parsed dependency pattern such as "lodash",
// "left-pad@^1.3.0" or "@babel/core@7".
type PackageSpecifier struct {
	// Name is the package name, including the scope for scoped packages.
	Name string

	// Range is the requested version range (or dist-tag).
	Range string

	// HasVersion reports whether the pattern contained a version separator.
	HasVersion bool
}

// NormalizePattern parses a raw dependency pattern into a PackageSpecifier.
// Any string is accepted; degenerate input yields degenerate output.
func NormalizePattern(pattern string) PackageSpecifier {
	spec := PackageSpecifier{
		Name:  pattern,
		Range: RangeLatest,
	}

	// The scope marker is removed before splitting and put back afterwards.
	scoped := strings.HasPrefix(spec.Name, "@")
	if scoped {
		spec.Name = spec.Name[1:]
	}

	if name, rest, found := strings.Cut(spec.Name, "@"); found {
		spec.Name = name
		spec.HasVersion = true
		spec.Range = rest
		if spec.Range == "" {
			spec.Range = RangeAny
		}
	}

	if scoped {
		spec.Name = "@" + spec.Name
	}

	return spec
}

// String reconstructs the pattern the specifier was parsed from.
func (s PackageSpecifier) String() string {
	if !s.HasVersion {
		return s.Name
	}
	return s.Name + "@" + s.Range
}

// Satisfies reports whether an installed version falls inside the requested range.
// Dist-tags and wildcard ranges are satisfied by any version.
func (s PackageSpecifier) Satisfies(version string) (bool, error) {
	if isUnboundedRange(s.Range) {
		return true, nil
	}

	constraint, err := semver.NewConstraint(s.Range)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "invalid version range"), "range", s.Range)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "invalid package version"), "version", version)
	}

	return constraint.Check(v), nil
}

func isUnboundedRange(r string) bool {
	switch strings.TrimSpace(r) {
	case "", RangeAny, RangeLatest, "x":
		return true
	default:
		return false
	}
}
