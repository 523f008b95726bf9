package domain

import "strings"

const (
	typesScope = "@types/"

	// scopeSeparator joins scope and name in DefinitelyTyped package names.
	scopeSeparator = "__"
)

// CanonicalKey returns the lockfile key for a package name.
// "@types/node" becomes "node" and "@types/babel__core" becomes "@babel/core";
// any other name is returned unchanged.
func CanonicalKey(name string) string {
	if !IsTypesPackage(name) {
		return name
	}

	bare := strings.TrimPrefix(name, typesScope)
	if scope, pkg, found := strings.Cut(bare, scopeSeparator); found {
		return "@" + scope + "/" + pkg
	}
	return bare
}

// IsTypesPackage reports whether name lives in the @types scope.
// Lookalike scopes such as @typescript-eslint are not types packages.
func IsTypesPackage(name string) bool {
	return strings.HasPrefix(name, typesScope)
}

// TypesPackageName returns the DefinitelyTyped package carrying definitions for name.
// "@scope/pkg" maps to "@types/scope__pkg". Names already in @types are returned as is.
func TypesPackageName(name string) string {
	if IsTypesPackage(name) {
		return name
	}
	if strings.HasPrefix(name, "@") {
		scoped := strings.Replace(name[1:], "/", scopeSeparator, 1)
		return typesScope + scoped
	}
	return typesScope + name
}
