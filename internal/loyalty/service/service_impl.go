package service

import (
	"context"

	"github.com/loyaltyhq/loyalty/internal/clock"
	customerdomain "github.com/loyaltyhq/loyalty/internal/customer/domain"
	"github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	orderdomain "github.com/loyaltyhq/loyalty/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Customers are recalculated in keyset batches of this size.
const recalcBatchSize = 200

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Customers customerdomain.Repository
	Orders    orderdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	customers customerdomain.Repository
	orders    orderdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("loyalty.service"),
		clock:     p.Clock,
		customers: p.Customers,
		orders:    p.Orders,
	}
}

func (s *Service) UpdateCustomerTier(ctx context.Context, customerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.UpdateCustomerTierTx(ctx, tx, customerID)
	})
}

func (s *Service) UpdateCustomerTierTx(ctx context.Context, tx *gorm.DB, customerID string) error {
	now := s.clock.Now()

	// Row lock serializes concurrent refreshes of the same customer.
	customer, err := s.customers.FindByIDForUpdate(ctx, tx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return customerdomain.ErrNotFound
	}

	totalSpent, err := s.orders.SumTotalInWindow(ctx, tx, customerID, domain.StartOfLastYear(now), now)
	if err != nil {
		return err
	}
	tier := domain.TierForSpend(totalSpent)

	if err := s.customers.UpdateTierFields(ctx, tx, customerID, tier, totalSpent, now); err != nil {
		return err
	}

	s.log.Debug("customer tier refreshed",
		zap.String("customer_id", customerID),
		zap.String("tier", string(tier)),
		zap.Int64("total_spent", totalSpent),
	)
	return nil
}

func (s *Service) GetCustomerTierInfo(ctx context.Context, customerID string) (domain.CustomerTierInfo, error) {
	now := s.clock.Now()

	customer, err := s.customers.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.CustomerTierInfo{}, err
	}
	if customer == nil {
		return domain.CustomerTierInfo{}, customerdomain.ErrNotFound
	}

	lastYearSpend, err := s.orders.SumTotalInWindow(ctx, s.db, customerID, domain.StartOfLastYear(now), now)
	if err != nil {
		return domain.CustomerTierInfo{}, err
	}
	currentYearSpend, err := s.orders.SumTotalInWindow(ctx, s.db, customerID, domain.StartOfCurrentYear(now), now)
	if err != nil {
		return domain.CustomerTierInfo{}, err
	}

	// The projection classifies from the live aggregate; the stored tier is
	// refreshed only by explicit maintenance operations.
	tier := domain.TierForSpend(lastYearSpend)

	return domain.CustomerTierInfo{
		CustomerID:     customer.ID,
		Name:           customer.Name,
		LastTierUpdate: customer.LastTierUpdate,
		TierInfo:       domain.ProjectTierInfo(tier, lastYearSpend, currentYearSpend, now),
	}, nil
}

func (s *Service) RecalculateAllTiers(ctx context.Context) (domain.RecalculationReport, error) {
	report := domain.RecalculationReport{Failed: []domain.CustomerFailure{}}

	afterID := ""
	for {
		ids, err := s.customers.ListIDs(ctx, s.db, afterID, recalcBatchSize)
		if err != nil {
			return report, err
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			// One transaction per customer: a failure here must not roll
			// back or abort the rest of the batch.
			if err := s.UpdateCustomerTier(ctx, id); err != nil {
				report.Failed = append(report.Failed, domain.CustomerFailure{
					CustomerID: id,
					Error:      err.Error(),
				})
				s.log.Warn("tier recalculation failed",
					zap.String("customer_id", id),
					zap.Error(err),
				)
				continue
			}
			report.Succeeded++
		}

		afterID = ids[len(ids)-1]
	}

	return report, nil
}
