package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/loyaltyhq/loyalty/pkg/db/pagination"
)

// Order rows are append-only: never updated or deleted once written.
// Date is the transaction date used for window aggregation, distinct from
// CreatedAt.
type Order struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID      string       `gorm:"not null" json:"order_id"`
	CustomerID   string       `gorm:"not null;index" json:"customer_id"`
	TotalInCents int64        `gorm:"not null" json:"total_in_cents"`
	Date         time.Time    `gorm:"not null" json:"date"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
}

type CreateOrderRequest struct {
	OrderID      string `json:"order_id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	TotalInCents int64  `json:"total_in_cents"`
	Date         string `json:"date"`
}

type ListOrdersRequest struct {
	CustomerID string
	pagination.Pagination
}

type ListOrdersResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}
