package models

import "time"

type BuildList struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID     string    `json:"owner_id" gorm:"type:uuid;not null;index"`
	CarID       int64     `json:"car_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Owner User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Car   Car    `json:"car,omitempty" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE;"`
	Parts []Part `json:"parts,omitempty" gorm:"many2many:build_list_parts;"`
}

func (BuildList) TableName() string {
	return "build_lists"
}
