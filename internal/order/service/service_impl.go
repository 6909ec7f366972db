package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/loyaltyhq/loyalty/internal/clock"
	customerdomain "github.com/loyaltyhq/loyalty/internal/customer/domain"
	loyaltydomain "github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	"github.com/loyaltyhq/loyalty/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Customers customerdomain.Repository
	Orders    domain.Repository
	Loyalty   loyaltydomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	customers customerdomain.Repository
	orders    domain.Repository
	loyalty   loyaltydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		customers: p.Customers,
		orders:    p.Orders,
		loyalty:   p.Loyalty,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return domain.Order{}, domain.ErrInvalidCustomerID
	}
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return domain.Order{}, domain.ErrInvalidCustomerName
	}
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return domain.Order{}, domain.ErrInvalidOrderID
	}
	if req.TotalInCents < 0 {
		return domain.Order{}, domain.ErrInvalidAmount
	}
	date, err := parseOrderDate(req.Date)
	if err != nil {
		return domain.Order{}, domain.ErrInvalidDate
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:           s.genID.Generate(),
		OrderID:      orderID,
		CustomerID:   customerID,
		TotalInCents: req.TotalInCents,
		Date:         date,
		CreatedAt:    now,
	}

	// Customer creation, order insert, and tier refresh commit or roll back
	// together: an order is never persisted without a consistent tier.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.customers.FindOrCreate(ctx, tx, customerID, customerName, now); err != nil {
			return err
		}
		if err := s.orders.Insert(ctx, tx, &order); err != nil {
			return err
		}
		return s.loyalty.UpdateCustomerTierTx(ctx, tx, customerID)
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order created",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID),
		zap.Int64("total_in_cents", req.TotalInCents),
	)
	return order, nil
}

func (s *Service) ListByCustomer(ctx context.Context, req domain.ListOrdersRequest) (domain.ListOrdersResponse, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return domain.ListOrdersResponse{}, domain.ErrInvalidCustomerID
	}

	customer, err := s.customers.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.ListOrdersResponse{}, err
	}
	if customer == nil {
		return domain.ListOrdersResponse{}, customerdomain.ErrNotFound
	}

	page := req.Pagination.Normalize()
	total, err := s.orders.CountByCustomer(ctx, s.db, customerID)
	if err != nil {
		return domain.ListOrdersResponse{}, err
	}
	orders, err := s.orders.ListByCustomer(ctx, s.db, customerID, page.Limit, page.Offset())
	if err != nil {
		return domain.ListOrdersResponse{}, err
	}

	resp := domain.ListOrdersResponse{Orders: orders}
	resp.Page = page.Page
	resp.Total = total
	resp.TotalPages = page.TotalPages(total)
	return resp, nil
}

// parseOrderDate accepts RFC 3339 timestamps and bare dates.
func parseOrderDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
