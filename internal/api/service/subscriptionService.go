package service

import (
	"errors"
	"time"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

// SubscriptionService stores tier state; payment execution is outside this
// backend.
type SubscriptionService interface {
	GetForUser(userID string) (*dto.SubscriptionResponse, error)
	ChangeTier(userID, tier string) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

func (s *subscriptionService) GetForUser(userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.GetActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no row yet means the implicit free tier
			return &dto.SubscriptionResponse{Tier: models.TierFree, Active: true}, nil
		}
		return nil, err
	}
	return dto.FromModelToSubscriptionResponse(sub), nil
}

// ChangeTier deactivates the current subscription and opens a new period
// on the requested tier, then mirrors the tier onto the user row.
func (s *subscriptionService) ChangeTier(userID, tier string) (*dto.SubscriptionResponse, error) {
	if !models.ValidTier(tier) {
		return nil, apperror.ErrInvalidArgument
	}

	current, err := s.subscriptionRepo.GetActiveByUser(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if current != nil {
		current.Active = false
		if err := s.subscriptionRepo.Update(current); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:             userID,
		Tier:               tier,
		Active:             true,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}
	if err := s.subscriptionRepo.Create(sub); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateTier(userID, tier); err != nil {
		return nil, err
	}

	return dto.FromModelToSubscriptionResponse(sub), nil
}
