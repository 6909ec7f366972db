package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidCustomerID   = errors.New("invalid_customer_id")
	ErrInvalidCustomerName = errors.New("invalid_customer_name")
	ErrInvalidOrderID      = errors.New("invalid_order_id")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidDate         = errors.New("invalid_date")
)

type Service interface {
	// Create ingests an order as one unit of work: find-or-create the
	// customer, insert the order, refresh the customer's tier. All or
	// nothing.
	Create(ctx context.Context, req CreateOrderRequest) (Order, error)

	// ListByCustomer returns the customer's order history, newest first.
	ListByCustomer(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error)
}
