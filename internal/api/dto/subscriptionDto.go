package dto

import (
	"time"

	"buildhub/internal/api/models"
)

type ChangeTierDTO struct {
	Tier string `json:"tier" binding:"required,oneof=free pro"`
}

type SubscriptionResponse struct {
	Tier               string    `json:"tier"`
	Active             bool      `json:"active"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
}

func FromModelToSubscriptionResponse(sub *models.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		Tier:               sub.Tier,
		Active:             sub.Active,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
	}
}
