package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowlock/internal/core/domain"
)

func countTiers(l *domain.Lockfile, key string) int {
	n := 0
	for _, entries := range l.Packages {
		if _, ok := entries[key]; ok {
			n++
		}
	}
	return n
}

func TestNewLockfile(t *testing.T) {
	l := domain.NewLockfile()

	assert.Equal(t, 2, l.Version)
	require.Len(t, l.Packages, 5)
	for _, tier := range domain.AllTiers() {
		assert.NotNil(t, l.Packages[tier], tier)
		assert.Empty(t, l.Packages[tier], tier)
	}
}

func TestLockfile_SetTier_Exclusive(t *testing.T) {
	l := domain.NewLockfile()

	sequence := []struct {
		tier domain.Tier
		path string
	}{
		{domain.TierCustom, ""},
		{domain.TierConverted, "flow-typed/flowgen/x_v1.0.0.js"},
		{domain.TierStub, "flow-typed/npm/x_vx.x.x.js"},
		{domain.TierCommunityRegistry, ""},
		{domain.TierNativeBuiltin, ""},
	}

	for _, step := range sequence {
		l.SetTier(step.tier, "x", step.path)

		assert.Equal(t, 1, countTiers(l, "x"))
		tier, path, ok := l.TierOf("x")
		require.True(t, ok)
		assert.Equal(t, step.tier, tier)
		assert.Equal(t, step.path, path)
	}
}

func TestLockfile_SetTier_UnknownTierCleared(t *testing.T) {
	l := &domain.Lockfile{
		Version: 2,
		Packages: map[domain.Tier]map[string]string{
			"legacy": {"x": "old.js"},
		},
	}

	l.SetTier(domain.TierStub, "x", "flow-typed/npm/x_vx.x.x.js")

	assert.Equal(t, 1, countTiers(l, "x"))
	assert.Len(t, l.Packages, 6)
}

func TestLockfile_TierOf_Missing(t *testing.T) {
	_, _, ok := domain.NewLockfile().TierOf("nope")
	assert.False(t, ok)
}

func TestLockfile_Entries(t *testing.T) {
	l := domain.NewLockfile()
	l.SetTier(domain.TierStub, "zeta", "flow-typed/npm/zeta_vx.x.x.js")
	l.SetTier(domain.TierNativeBuiltin, "alpha", "")
	l.SetTier(domain.TierCustom, "@scope/mid", "")

	entries := l.Entries()

	require.Len(t, entries, 3)
	assert.Equal(t, "@scope/mid", entries[0].Key)
	assert.Equal(t, "alpha", entries[1].Key)
	assert.Equal(t, domain.TierNativeBuiltin, entries[1].Tier)
	assert.Equal(t, "zeta", entries[2].Key)
	assert.Equal(t, "flow-typed/npm/zeta_vx.x.x.js", entries[2].Path)
}

func TestTier_Priority(t *testing.T) {
	order := []domain.Tier{
		domain.TierNativeBuiltin,
		domain.TierCommunityRegistry,
		domain.TierConverted,
		domain.TierStub,
		domain.TierCustom,
	}
	for i := 1; i < len(order); i++ {
		assert.Greater(t, order[i-1].Priority(), order[i].Priority())
	}
	assert.Equal(t, -1, domain.Tier("legacy").Priority())
}
