package domain

import (
	"context"

	"gorm.io/gorm"
)

// Service keeps persisted tier state consistent with the order ledger.
type Service interface {
	// UpdateCustomerTier recomputes and persists one customer's tier in its
	// own transaction. Idempotent for an unchanged ledger.
	UpdateCustomerTier(ctx context.Context, customerID string) error

	// UpdateCustomerTierTx is UpdateCustomerTier inside a caller-supplied
	// transaction; order ingestion uses it to share its unit of work.
	UpdateCustomerTierTx(ctx context.Context, tx *gorm.DB, customerID string) error

	// GetCustomerTierInfo builds the tier projection without mutating any
	// stored state.
	GetCustomerTierInfo(ctx context.Context, customerID string) (CustomerTierInfo, error)

	// RecalculateAllTiers refreshes every customer, one transaction each,
	// and reports per-customer failures.
	RecalculateAllTiers(ctx context.Context) (RecalculationReport, error)
}
