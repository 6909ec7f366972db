package repository

import (
	"context"
	"time"

	"github.com/loyaltyhq/loyalty/internal/customer/domain"
	loyaltydomain "github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	"github.com/loyaltyhq/loyalty/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const customerColumns = `id, name, tier, total_spent, last_tier_update, created_at, updated_at`

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id string) (*domain.Customer, error) {
	return r.findByID(ctx, conn, id, false)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, conn *gorm.DB, id string) (*domain.Customer, error) {
	return r.findByID(ctx, conn, id, true)
}

func (r *repo) findByID(ctx context.Context, conn *gorm.DB, id string, forUpdate bool) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	if forUpdate {
		query += db.ForUpdateClause(conn)
	}

	var customer domain.Customer
	err := conn.WithContext(ctx).Raw(query, id).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == "" {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) FindOrCreate(ctx context.Context, conn *gorm.DB, id, name string, now time.Time) (*domain.Customer, error) {
	existing, err := r.FindByIDForUpdate(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	customer := domain.Customer{
		ID:             id,
		Name:           name,
		Tier:           loyaltydomain.TierBronze,
		TotalSpent:     0,
		LastTierUpdate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = conn.WithContext(ctx).Exec(
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.Tier,
		customer.TotalSpent,
		customer.LastTierUpdate,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost the insert race; the winner's row is the customer.
			return r.FindByIDForUpdate(ctx, conn, id)
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) UpdateTierFields(ctx context.Context, conn *gorm.DB, id string, tier loyaltydomain.Tier, totalSpent int64, updatedAt time.Time) error {
	result := conn.WithContext(ctx).Exec(
		`UPDATE customers
		 SET tier = ?, total_spent = ?, last_tier_update = ?, updated_at = ?
		 WHERE id = ?`,
		tier,
		totalSpent,
		updatedAt,
		updatedAt,
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) ListIDs(ctx context.Context, conn *gorm.DB, afterID string, limit int) ([]string, error) {
	var ids []string
	err := conn.WithContext(ctx).Raw(
		`SELECT id FROM customers
		 WHERE id > ?
		 ORDER BY id
		 LIMIT ?`,
		afterID,
		limit,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
