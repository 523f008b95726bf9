package domain

import (
	"path"
	"path/filepath"
)

const (
	// FlowTypedDirName is the directory holding library definitions and the lockfile.
	FlowTypedDirName = "flow-typed"

	// ConvertedDirName is the subdirectory for definitions produced by the converter.
	ConvertedDirName = "flowgen"

	// StubDirName is the subdirectory flow-typed writes registry definitions and stubs into.
	StubDirName = "npm"

	// LockfileName is the name of the lockfile inside FlowTypedDirName.
	LockfileName = "flow.lock"

	// ConfigFileName is the name of the optional tool configuration file.
	ConfigFileName = "flowlock.yaml"

	// ProjectManifestName is the name of the project and package manifests.
	ProjectManifestName = "package.json"

	// NodeModulesDirName is the directory installed packages live in.
	NodeModulesDirName = "node_modules"

	// StubVersion is the version placeholder flow-typed uses in stub file names.
	StubVersion = "x.x.x"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultLockfilePath returns the project-relative lockfile path.
func DefaultLockfilePath() string {
	return path.Join(FlowTypedDirName, LockfileName)
}

// ConvertedPath returns the project-relative path of a converted definition.
// Paths are slash separated because they are recorded in the lockfile.
func ConvertedPath(flowTypedDir, key, version string) string {
	if version == "" {
		version = StubVersion
	}
	return path.Join(flowTypedDir, ConvertedDirName, key+"_v"+version+".js")
}

// StubPath returns the project-relative path flow-typed uses for a generated stub.
func StubPath(flowTypedDir, key string) string {
	return path.Join(flowTypedDir, StubDirName, key+"_v"+StubVersion+".js")
}

// NodeModulesBinPath returns the directory of locally installed executables under root.
func NodeModulesBinPath(root string) string {
	return filepath.Join(root, NodeModulesDirName, ".bin")
}
