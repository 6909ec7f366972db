package repository

import (
	"context"
	"time"

	"github.com/loyaltyhq/loyalty/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, order *domain.Order) error {
	return conn.WithContext(ctx).Exec(
		`INSERT INTO orders (id, order_id, customer_id, total_in_cents, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.OrderID,
		order.CustomerID,
		order.TotalInCents,
		order.Date,
		order.CreatedAt,
	).Error
}

func (r *repo) SumTotalInWindow(ctx context.Context, conn *gorm.DB, customerID string, from, to time.Time) (int64, error) {
	var total int64
	err := conn.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_in_cents), 0)
		 FROM orders
		 WHERE customer_id = ? AND date >= ? AND date < ?`,
		customerID,
		from,
		to,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) ListByCustomer(ctx context.Context, conn *gorm.DB, customerID string, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := conn.WithContext(ctx).Raw(
		`SELECT id, order_id, customer_id, total_in_cents, date, created_at
		 FROM orders
		 WHERE customer_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		customerID,
		limit,
		offset,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) CountByCustomer(ctx context.Context, conn *gorm.DB, customerID string) (int64, error) {
	var count int64
	err := conn.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM orders WHERE customer_id = ?`,
		customerID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
