package models

import "time"

type Car struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID     string    `json:"owner_id" gorm:"type:uuid;not null;index"`
	CategoryID  int64     `json:"category_id" gorm:"not null;index"`
	Make        string    `json:"make" gorm:"not null"`
	Model       string    `json:"model" gorm:"not null"`
	Year        int       `json:"year" gorm:"not null;check:year >= 1900"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Owner    User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Car) TableName() string {
	return "cars"
}
