package dto

import (
	"time"

	"buildhub/internal/api/models"
)

type CreatePartDTO struct {
	CategoryID   int64  `json:"category_id" binding:"required,gt=0"`
	Manufacturer string `json:"manufacturer" binding:"required,max=100"`
	Name         string `json:"name" binding:"required,max=200"`
	Spec         string `json:"spec" binding:"max=10000"`
}

type UpdatePartDTO struct {
	CategoryID   *int64  `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	Manufacturer *string `json:"manufacturer,omitempty" binding:"omitempty,max=100"`
	Name         *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Spec         *string `json:"spec,omitempty" binding:"omitempty,max=10000"`
}

type PartResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Category     string    `json:"category,omitempty"`
	Manufacturer string    `json:"manufacturer"`
	Name         string    `json:"name"`
	Spec         string    `json:"spec,omitempty"`
	ExternalRef  *string   `json:"external_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromModelToPartResponse(part *models.Part) *PartResponse {
	return &PartResponse{
		ID:           part.ID,
		CategoryID:   part.CategoryID,
		Category:     part.Category.Name,
		Manufacturer: part.Manufacturer,
		Name:         part.Name,
		Spec:         part.Spec,
		ExternalRef:  part.ExternalRef,
		CreatedAt:    part.CreatedAt,
		UpdatedAt:    part.UpdatedAt,
	}
}
