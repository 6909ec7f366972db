package domain

import "time"

// Tier is a customer's loyalty classification.
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Tier thresholds in cents of qualifying spend. These constants are the
// single source of truth for classification and for every projection
// derived from it.
const (
	SilverThresholdCents int64 = 10_000
	GoldThresholdCents   int64 = 50_000
)

// TierForSpend classifies an aggregated spend amount, highest tier first.
// Thresholds are inclusive.
func TierForSpend(totalCents int64) Tier {
	switch {
	case totalCents >= GoldThresholdCents:
		return TierGold
	case totalCents >= SilverThresholdCents:
		return TierSilver
	default:
		return TierBronze
	}
}

// Threshold returns the spend a customer must reach to hold this tier.
// Bronze has no floor.
func (t Tier) Threshold() int64 {
	switch t {
	case TierGold:
		return GoldThresholdCents
	case TierSilver:
		return SilverThresholdCents
	default:
		return 0
	}
}

// Next returns the tier above t, if any.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierBronze:
		return TierSilver, true
	case TierSilver:
		return TierGold, true
	default:
		return "", false
	}
}

// Previous returns the tier below t, if any.
func (t Tier) Previous() (Tier, bool) {
	switch t {
	case TierGold:
		return TierSilver, true
	case TierSilver:
		return TierBronze, true
	default:
		return "", false
	}
}

func (t Tier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold:
		return true
	default:
		return false
	}
}

// StartOfLastYear is the lower bound of the classification window:
// January 1 of the previous calendar year, UTC.
func StartOfLastYear(now time.Time) time.Time {
	return time.Date(now.UTC().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// StartOfCurrentYear is the lower bound of the downgrade-risk window:
// January 1 of the current calendar year, UTC.
func StartOfCurrentYear(now time.Time) time.Time {
	return time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// NextTierReset is the instant the current-year window closes and a new
// classification window begins: January 1 of the following year, UTC.
func NextTierReset(now time.Time) time.Time {
	return time.Date(now.UTC().Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// ProjectTierInfo derives the progress/risk projection for a tier from the
// two window aggregates. Pure; inputs are already-aggregated cents and a
// fixed now.
//
// Amounts are clamped at zero: a customer already past the next threshold
// reports 0 remaining rather than a negative distance.
func ProjectTierInfo(tier Tier, lastYearSpend, currentYearSpend int64, now time.Time) TierInfo {
	info := TierInfo{
		Tier:                  tier,
		TotalSpent:            lastYearSpend,
		TotalSpentCurrentYear: currentYearSpend,
		WindowStart:           StartOfLastYear(now),
		DowngradeDate:         NextTierReset(now),
	}

	if next, ok := tier.Next(); ok {
		info.AmountToNextTier = clampZero(next.Threshold() - lastYearSpend)
	}

	if prev, ok := tier.Previous(); ok {
		info.AmountToAvoidDowngrade = clampZero(tier.Threshold() - currentYearSpend)
		if currentYearSpend < tier.Threshold() {
			info.DowngradeTier = &prev
		}
	}

	return info
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
