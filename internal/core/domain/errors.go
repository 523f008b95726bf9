package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when an installed package's package.json cannot be located.
	ErrManifestNotFound = zerr.New("package manifest not found")

	// ErrManifestParseFailed is returned when an installed package's package.json is malformed.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrPackageFileNotFound is returned when a file cannot be found inside an installed package.
	ErrPackageFileNotFound = zerr.New("package file not found")

	// ErrNativeTypesNotFound is returned when a package ships no index.js.flow.
	ErrNativeTypesNotFound = zerr.New("package ships no flow definition")

	// ErrRegistryLookupFailed is returned when flow-typed has no definition for a package.
	ErrRegistryLookupFailed = zerr.New("flow-typed registry lookup failed")

	// ErrTypingsNotFound is returned when a package's TypeScript entry point cannot be resolved.
	ErrTypingsNotFound = zerr.New("typescript definitions not found")

	// ErrConversionFailed is returned when a TypeScript definition cannot be converted.
	ErrConversionFailed = zerr.New("failed to convert typescript definitions")

	// ErrStubGenerationFailed is returned when flow-typed cannot create a stub.
	ErrStubGenerationFailed = zerr.New("failed to generate stub definition")

	// ErrTypesPackageInstallFailed is returned when the @types package cannot be added.
	ErrTypesPackageInstallFailed = zerr.New("failed to install @types package")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrLockfileVersionUnsupported is returned for lockfiles written by a newer format.
	ErrLockfileVersionUnsupported = zerr.New("unsupported lockfile version")

	// ErrProjectManifestNotFound is returned when the project has no package.json.
	ErrProjectManifestNotFound = zerr.New("project package.json not found")

	// ErrProjectManifestParseFailed is returned when the project package.json is malformed.
	ErrProjectManifestParseFailed = zerr.New("failed to parse project package.json")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidPackageManager is returned when the config names an unknown package manager.
	ErrInvalidPackageManager = zerr.New("invalid package manager, expected 'yarn', 'npm' or 'pnpm'")

	// ErrEmptyCommand is returned when an external tool is configured with an empty command.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrArtifactReadFailed is returned when a definition file cannot be read.
	ErrArtifactReadFailed = zerr.New("failed to read file")

	// ErrArtifactWriteFailed is returned when a definition file cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write file")
)
