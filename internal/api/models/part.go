package models

import "time"

// Part is a global catalog entry, not owned by any user. ExternalRef is the
// upstream catalog key used by the sync service to upsert idempotently.
type Part struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CategoryID   int64     `json:"category_id" gorm:"not null;index"`
	Manufacturer string    `json:"manufacturer" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Spec         string    `json:"spec" gorm:"type:text"`
	ExternalRef  *string   `json:"external_ref,omitempty" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Part) TableName() string {
	return "parts"
}
