package domain

import (
	"context"
	"errors"
	"time"

	loyaltydomain "github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("customer_not_found")

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Customer, error)

	// FindByIDForUpdate locks the customer row for the duration of the
	// surrounding transaction, serializing concurrent tier refreshes.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id string) (*Customer, error)

	// FindOrCreate returns the locked existing customer or inserts a new
	// Bronze one with the supplied display name.
	FindOrCreate(ctx context.Context, db *gorm.DB, id, name string, now time.Time) (*Customer, error)

	// UpdateTierFields persists the recomputed tier cache as a single write.
	UpdateTierFields(ctx context.Context, db *gorm.DB, id string, tier loyaltydomain.Tier, totalSpent int64, updatedAt time.Time) error

	// ListIDs pages through customer ids in keyset order for batch jobs.
	ListIDs(ctx context.Context, db *gorm.DB, afterID string, limit int) ([]string, error)
}
