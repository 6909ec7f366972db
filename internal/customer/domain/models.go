package domain

import (
	"time"

	loyaltydomain "github.com/loyaltyhq/loyalty/internal/loyalty/domain"
)

// Customer's tier fields are a cache over the order ledger; only the tier
// maintenance service writes them.
type Customer struct {
	ID             string             `gorm:"primaryKey" json:"id"`
	Name           string             `gorm:"not null" json:"name"`
	Tier           loyaltydomain.Tier `gorm:"not null;default:Bronze" json:"tier"`
	TotalSpent     int64              `gorm:"not null;default:0" json:"total_spent"`
	LastTierUpdate time.Time          `gorm:"not null" json:"last_tier_update"`
	CreatedAt      time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"not null" json:"updated_at"`
}
