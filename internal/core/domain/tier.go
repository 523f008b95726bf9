package domain

// Tier is the fallback tier a package's type definition was resolved from.
// The string values are the keys used in the lockfile.
type Tier string

const (
	// TierConverted marks a definition mechanically converted from TypeScript.
	TierConverted Tier = "flowgen"

	// TierCustom marks a pending placeholder for a package without a resolved definition.
	TierCustom Tier = "custom"

	// TierCommunityRegistry marks a definition installed from the flow-typed registry.
	TierCommunityRegistry Tier = "flowTyped"

	// TierStub marks a generated stub definition.
	TierStub Tier = "stub"

	// TierNativeBuiltin marks a package shipping its own index.js.flow.
	TierNativeBuiltin Tier = "builtin"
)

// AllTiers returns every known tier, in lockfile order.
func AllTiers() []Tier {
	return []Tier{
		TierConverted,
		TierCustom,
		TierCommunityRegistry,
		TierStub,
		TierNativeBuiltin,
	}
}

// Priority ranks the tier; a higher value is a more authoritative source.
// Unknown tiers rank below the custom placeholder.
func (t Tier) Priority() int {
	switch t {
	case TierNativeBuiltin:
		return 4
	case TierCommunityRegistry:
		return 3
	case TierConverted:
		return 2
	case TierStub:
		return 1
	case TierCustom:
		return 0
	default:
		return -1
	}
}

// String returns the lockfile key of the tier.
func (t Tier) String() string {
	return string(t)
}
