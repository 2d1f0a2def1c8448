package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TierFree = "free"
	TierPro  = "pro"
)

// Subscription stores the billing tier as data; payment execution lives
// outside this backend.
type Subscription struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID             string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Tier               string    `gorm:"not null;default:'free'" json:"tier"`
	Active             bool      `gorm:"not null;default:true" json:"active"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func ValidTier(tier string) bool {
	return tier == TierFree || tier == TierPro
}
