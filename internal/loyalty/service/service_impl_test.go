package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/loyaltyhq/loyalty/internal/clock"
	customerdomain "github.com/loyaltyhq/loyalty/internal/customer/domain"
	customerrepo "github.com/loyaltyhq/loyalty/internal/customer/repository"
	"github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	orderdomain "github.com/loyaltyhq/loyalty/internal/order/domain"
	orderrepo "github.com/loyaltyhq/loyalty/internal/order/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:loyalty_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&orderdomain.Order{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, customers customerdomain.Repository) domain.Service {
	t.Helper()
	return New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     clock.NewFakeClock(testNow),
		Customers: customers,
		Orders:    orderrepo.Provide(),
	})
}

func seedCustomer(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&customerdomain.Customer{
		ID:             id,
		Name:           name,
		Tier:           domain.TierBronze,
		LastTierUpdate: testNow.AddDate(0, -1, 0),
		CreatedAt:      testNow.AddDate(0, -1, 0),
		UpdatedAt:      testNow.AddDate(0, -1, 0),
	}).Error)
}

func seedOrder(t *testing.T, db *gorm.DB, id int64, customerID string, totalInCents int64, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&orderdomain.Order{
		ID:           snowflake.ID(id),
		OrderID:      fmt.Sprintf("O%d", id),
		CustomerID:   customerID,
		TotalInCents: totalInCents,
		Date:         date,
		CreatedAt:    date,
	}).Error)
}

func loadCustomer(t *testing.T, db *gorm.DB, id string) customerdomain.Customer {
	t.Helper()
	var customer customerdomain.Customer
	require.NoError(t, db.First(&customer, "id = ?", id).Error)
	return customer
}

func TestUpdateCustomerTier_ClassifiesFromLastYearWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	seedCustomer(t, db, "C1", "Alice")
	seedOrder(t, db, 1, "C1", 6000, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, 2, "C1", 6000, time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC))
	// Dated before Jan 1 of last year: must not count.
	seedOrder(t, db, 3, "C1", 90000, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.UpdateCustomerTier(context.Background(), "C1"))

	customer := loadCustomer(t, db, "C1")
	assert.Equal(t, domain.TierSilver, customer.Tier)
	assert.Equal(t, int64(12000), customer.TotalSpent)
	assert.Equal(t, testNow, customer.LastTierUpdate.UTC())
}

func TestUpdateCustomerTier_NoQualifyingOrders(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	seedCustomer(t, db, "C1", "Alice")

	require.NoError(t, svc.UpdateCustomerTier(context.Background(), "C1"))

	customer := loadCustomer(t, db, "C1")
	assert.Equal(t, domain.TierBronze, customer.Tier)
	assert.Equal(t, int64(0), customer.TotalSpent)
}

func TestUpdateCustomerTier_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	seedCustomer(t, db, "C1", "Alice")
	seedOrder(t, db, 1, "C1", 52000, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.UpdateCustomerTier(context.Background(), "C1"))
	first := loadCustomer(t, db, "C1")

	require.NoError(t, svc.UpdateCustomerTier(context.Background(), "C1"))
	second := loadCustomer(t, db, "C1")

	assert.Equal(t, first.Tier, second.Tier)
	assert.Equal(t, first.TotalSpent, second.TotalSpent)
	assert.Equal(t, first.LastTierUpdate.UTC(), second.LastTierUpdate.UTC())
	assert.Equal(t, domain.TierGold, second.Tier)
}

func TestUpdateCustomerTier_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	err := svc.UpdateCustomerTier(context.Background(), "missing")
	assert.ErrorIs(t, err, customerdomain.ErrNotFound)
}

func TestGetCustomerTierInfo_DoesNotMutateStoredTier(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	// Stored tier is stale on purpose: the ledger already qualifies for Gold.
	seedCustomer(t, db, "C1", "Alice")
	seedOrder(t, db, 1, "C1", 60000, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC))

	info, err := svc.GetCustomerTierInfo(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierGold, info.Tier)
	assert.Equal(t, "Alice", info.Name)

	customer := loadCustomer(t, db, "C1")
	assert.Equal(t, domain.TierBronze, customer.Tier)
	assert.Equal(t, int64(0), customer.TotalSpent)
}

func TestGetCustomerTierInfo_DowngradeProjection(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	// Last-year window total 60000 (Gold), current-year-to-date only 40000.
	seedCustomer(t, db, "C1", "Alice")
	seedOrder(t, db, 1, "C1", 20000, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, 2, "C1", 40000, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	info, err := svc.GetCustomerTierInfo(context.Background(), "C1")
	require.NoError(t, err)

	assert.Equal(t, domain.TierGold, info.Tier)
	assert.Equal(t, int64(60000), info.TotalSpent)
	assert.Equal(t, int64(40000), info.TotalSpentCurrentYear)
	if assert.NotNil(t, info.DowngradeTier) {
		assert.Equal(t, domain.TierSilver, *info.DowngradeTier)
	}
	assert.Equal(t, int64(10000), info.AmountToAvoidDowngrade)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), info.DowngradeDate)
}

func TestGetCustomerTierInfo_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	_, err := svc.GetCustomerTierInfo(context.Background(), "missing")
	assert.ErrorIs(t, err, customerdomain.ErrNotFound)
}

// failingCustomerRepo fails UpdateTierFields for one customer id.
type failingCustomerRepo struct {
	customerdomain.Repository
	failID string
}

var errForced = errors.New("forced update failure")

func (r *failingCustomerRepo) UpdateTierFields(ctx context.Context, db *gorm.DB, id string, tier domain.Tier, totalSpent int64, updatedAt time.Time) error {
	if id == r.failID {
		return errForced
	}
	return r.Repository.UpdateTierFields(ctx, db, id, tier, totalSpent, updatedAt)
}

func TestRecalculateAllTiers_IsolatesPerCustomerFailures(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, &failingCustomerRepo{
		Repository: customerrepo.Provide(),
		failID:     "B",
	})

	for _, id := range []string{"A", "B", "C"} {
		seedCustomer(t, db, id, "Customer "+id)
	}
	seedOrder(t, db, 1, "A", 15000, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, 2, "C", 70000, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	report, err := svc.RecalculateAllTiers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "B", report.Failed[0].CustomerID)
	assert.Contains(t, report.Failed[0].Error, "forced update failure")

	assert.Equal(t, domain.TierSilver, loadCustomer(t, db, "A").Tier)
	assert.Equal(t, domain.TierBronze, loadCustomer(t, db, "B").Tier)
	assert.Equal(t, domain.TierGold, loadCustomer(t, db, "C").Tier)
}

func TestRecalculateAllTiers_EmptyCustomerBase(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, customerrepo.Provide())

	report, err := svc.RecalculateAllTiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Succeeded)
	assert.Empty(t, report.Failed)
}
