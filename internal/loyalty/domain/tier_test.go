package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierForSpend(t *testing.T) {
	tests := []struct {
		name  string
		spend int64
		want  Tier
	}{
		{"zero", 0, TierBronze},
		{"just below silver", 9999, TierBronze},
		{"silver boundary", 10000, TierSilver},
		{"mid silver", 25000, TierSilver},
		{"just below gold", 49999, TierSilver},
		{"gold boundary", 50000, TierGold},
		{"above gold", 120000, TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierForSpend(tt.spend))
		})
	}
}

func TestWindowBounds(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), StartOfLastYear(now))
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), StartOfCurrentYear(now))
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), NextTierReset(now))
}

func TestWindowBoundsNormalizeToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+11", 11*3600)
	now := time.Date(2026, time.January, 1, 5, 0, 0, 0, loc) // still 2025 in UTC

	assert.Equal(t, 2024, StartOfLastYear(now).Year())
	assert.Equal(t, 2025, StartOfCurrentYear(now).Year())
}

func TestProjectTierInfo_GoldDowngradeRisk(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	info := ProjectTierInfo(TierGold, 60000, 40000, now)

	assert.Equal(t, TierGold, info.Tier)
	assert.Equal(t, int64(0), info.AmountToNextTier)
	if assert.NotNil(t, info.DowngradeTier) {
		assert.Equal(t, TierSilver, *info.DowngradeTier)
	}
	assert.Equal(t, int64(10000), info.AmountToAvoidDowngrade)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), info.DowngradeDate)
}

func TestProjectTierInfo_GoldOnTrack(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	info := ProjectTierInfo(TierGold, 90000, 55000, now)

	assert.Nil(t, info.DowngradeTier)
	assert.Equal(t, int64(0), info.AmountToAvoidDowngrade)
}

func TestProjectTierInfo_SilverProgress(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	info := ProjectTierInfo(TierSilver, 12000, 3000, now)

	assert.Equal(t, int64(38000), info.AmountToNextTier)
	if assert.NotNil(t, info.DowngradeTier) {
		assert.Equal(t, TierBronze, *info.DowngradeTier)
	}
	assert.Equal(t, int64(7000), info.AmountToAvoidDowngrade)
}

func TestProjectTierInfo_BronzeHasNoDowngrade(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	info := ProjectTierInfo(TierBronze, 4000, 4000, now)

	assert.Equal(t, int64(6000), info.AmountToNextTier)
	assert.Nil(t, info.DowngradeTier)
	assert.Equal(t, int64(0), info.AmountToAvoidDowngrade)
}

func TestProjectTierInfo_ClampsNegativeDistances(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Spend already past the next threshold at the boundary instant.
	info := ProjectTierInfo(TierSilver, 55000, 55000, now)

	assert.Equal(t, int64(0), info.AmountToNextTier)
	assert.Nil(t, info.DowngradeTier)
}

func TestTierNavigation(t *testing.T) {
	next, ok := TierBronze.Next()
	assert.True(t, ok)
	assert.Equal(t, TierSilver, next)

	_, ok = TierGold.Next()
	assert.False(t, ok)

	prev, ok := TierGold.Previous()
	assert.True(t, ok)
	assert.Equal(t, TierSilver, prev)

	_, ok = TierBronze.Previous()
	assert.False(t, ok)

	assert.Equal(t, GoldThresholdCents, TierGold.Threshold())
	assert.Equal(t, SilverThresholdCents, TierSilver.Threshold())
	assert.Equal(t, int64(0), TierBronze.Threshold())
}
