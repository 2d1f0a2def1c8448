package dto

import (
	"time"

	"buildhub/internal/api/models"
)

type CreateBuildListDTO struct {
	CarID       int64   `json:"car_id" binding:"required,gt=0"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=5000"`
	PartIDs     []int64 `json:"part_ids" binding:"dive,gt=0"`
}

type UpdateBuildListDTO struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=5000"`
	PartIDs     *[]int64 `json:"part_ids,omitempty" binding:"omitempty,dive,gt=0"`
}

type BuildListResponse struct {
	ID          int64          `json:"id"`
	OwnerID     string         `json:"owner_id"`
	CarID       int64          `json:"car_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Parts       []PartResponse `json:"parts,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func FromModelToBuildListResponse(list *models.BuildList) *BuildListResponse {
	parts := make([]PartResponse, 0, len(list.Parts))
	for i := range list.Parts {
		parts = append(parts, *FromModelToPartResponse(&list.Parts[i]))
	}

	return &BuildListResponse{
		ID:          list.ID,
		OwnerID:     list.OwnerID,
		CarID:       list.CarID,
		Title:       list.Title,
		Description: list.Description,
		Parts:       parts,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}
