package domain

import "slices"

// LockfileVersion is the lockfile format version written by this tool.
const LockfileVersion = 2

// Lockfile records, per package key, the single tier its type definition was
// resolved from and the path of any generated file.
//
// Invariant: a key appears in at most one tier mapping.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int `json:"version"`

	// Packages maps tier -> package key -> source path.
	Packages map[Tier]map[string]string `json:"packages"`
}

// LockEntry is one package of the lockfile, flattened for listing.
type LockEntry struct {
	Key  string
	Tier Tier
	Path string
}

// NewLockfile returns an empty lockfile at the current version.
func NewLockfile() *Lockfile {
	l := &Lockfile{Version: LockfileVersion}
	l.Normalize()
	return l
}

// Normalize makes sure every known tier has a mapping.
func (l *Lockfile) Normalize() {
	if l.Packages == nil {
		l.Packages = make(map[Tier]map[string]string, len(AllTiers()))
	}
	for _, tier := range AllTiers() {
		if l.Packages[tier] == nil {
			l.Packages[tier] = make(map[string]string)
		}
	}
}

// SetTier assigns key to tier, removing it from every other tier first.
// An empty path still registers the key, which is how pending placeholders are recorded.
func (l *Lockfile) SetTier(tier Tier, key, path string) {
	l.Normalize()
	for _, entries := range l.Packages {
		delete(entries, key)
	}
	if l.Packages[tier] == nil {
		l.Packages[tier] = make(map[string]string)
	}
	l.Packages[tier][key] = path
}

// TierOf returns the tier and path recorded for key.
func (l *Lockfile) TierOf(key string) (Tier, string, bool) {
	for tier, entries := range l.Packages {
		if path, ok := entries[key]; ok {
			return tier, path, true
		}
	}
	return "", "", false
}

// Entries lists every recorded package sorted by key.
func (l *Lockfile) Entries() []LockEntry {
	var entries []LockEntry
	for tier, pkgs := range l.Packages {
		for key, path := range pkgs {
			entries = append(entries, LockEntry{Key: key, Tier: tier, Path: path})
		}
	}
	slices.SortFunc(entries, func(a, b LockEntry) int {
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return b.Tier.Priority() - a.Tier.Priority()
	})
	return entries
}
