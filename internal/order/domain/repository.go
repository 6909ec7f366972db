package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error

	// SumTotalInWindow aggregates total_in_cents over the half-open window
	// [from, to) of a customer's orders. Returns 0 when nothing qualifies.
	SumTotalInWindow(ctx context.Context, db *gorm.DB, customerID string, from, to time.Time) (int64, error)

	ListByCustomer(ctx context.Context, db *gorm.DB, customerID string, limit, offset int) ([]Order, error)
	CountByCustomer(ctx context.Context, db *gorm.DB, customerID string) (int64, error)
}
