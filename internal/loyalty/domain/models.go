package domain

import "time"

// TierInfo is the on-demand projection of a customer's tier standing.
// It is computed, never persisted.
type TierInfo struct {
	Tier                   Tier      `json:"tier"`
	TotalSpent             int64     `json:"total_spent"`
	TotalSpentCurrentYear  int64     `json:"total_spent_current_year"`
	AmountToNextTier       int64     `json:"amount_to_next_tier"`
	DowngradeTier          *Tier     `json:"downgrade_tier"`
	DowngradeDate          time.Time `json:"downgrade_date"`
	AmountToAvoidDowngrade int64     `json:"amount_to_avoid_downgrade"`
	WindowStart            time.Time `json:"window_start"`
}

// CustomerTierInfo pairs the projection with the customer's identity.
type CustomerTierInfo struct {
	CustomerID     string    `json:"customer_id"`
	Name           string    `json:"name"`
	LastTierUpdate time.Time `json:"last_tier_update"`
	TierInfo
}

// CustomerFailure records one customer's error inside a batch recalculation.
type CustomerFailure struct {
	CustomerID string `json:"customer_id"`
	Error      string `json:"error"`
}

// RecalculationReport summarizes a full recalculation pass. Failures are
// collected per customer instead of aborting the batch.
type RecalculationReport struct {
	Succeeded int               `json:"succeeded"`
	Failed    []CustomerFailure `json:"failed"`
}
