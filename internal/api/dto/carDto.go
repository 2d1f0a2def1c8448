package dto

import (
	"time"

	"buildhub/internal/api/models"
)

type CreateCarDTO struct {
	CategoryID  int64  `json:"category_id" binding:"required,gt=0"`
	Make        string `json:"make" binding:"required,max=100"`
	Model       string `json:"model" binding:"required,max=100"`
	Year        int    `json:"year" binding:"required,min=1900,max=2100"`
	Description string `json:"description" binding:"max=5000"`
}

type UpdateCarDTO struct {
	CategoryID  *int64  `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	Make        *string `json:"make,omitempty" binding:"omitempty,max=100"`
	Model       *string `json:"model,omitempty" binding:"omitempty,max=100"`
	Year        *int    `json:"year,omitempty" binding:"omitempty,min=1900,max=2100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
}

type CarResponse struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"owner_id"`
	CategoryID  int64     `json:"category_id"`
	Category    string    `json:"category,omitempty"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModelToCarResponse(car *models.Car) *CarResponse {
	return &CarResponse{
		ID:          car.ID,
		OwnerID:     car.OwnerID,
		CategoryID:  car.CategoryID,
		Category:    car.Category.Name,
		Make:        car.Make,
		Model:       car.Model,
		Year:        car.Year,
		Description: car.Description,
		CreatedAt:   car.CreatedAt,
		UpdatedAt:   car.UpdatedAt,
	}
}
