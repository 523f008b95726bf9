package domain

// DefaultTypingsEntry is used when a manifest declares neither "typings" nor "types".
const DefaultTypingsEntry = "index.d.ts"

// NativeFlowEntry is the in-package Flow definition file that makes a package authoritative.
const NativeFlowEntry = "index.js.flow"

// Manifest is the subset of an installed package's package.json the resolver needs.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Typings string `json:"typings"`
	Types   string `json:"types"`
}

// TypingsEntry returns the declared TypeScript entry point, "typings" taking precedence.
func (m *Manifest) TypingsEntry() string {
	if m == nil {
		return DefaultTypingsEntry
	}
	if m.Typings != "" {
		return m.Typings
	}
	if m.Types != "" {
		return m.Types
	}
	return DefaultTypingsEntry
}
