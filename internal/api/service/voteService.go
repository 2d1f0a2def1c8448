package service

import (
	"context"
	"errors"
	"math"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

type VoteService interface {
	CastVote(kind models.EntityKind, entityID int64, userID, direction string) (*dto.VoteResponse, error)
	RemoveVote(kind models.EntityKind, entityID int64, userID string) (bool, error)
	GetUserVote(kind models.EntityKind, entityID int64, userID string) (*dto.UserVoteResponse, error)
	GetSummary(kind models.EntityKind, entityID int64) (*dto.VoteSummaryResponse, error)
}

type voteService struct {
	voteRepo repository.VoteRepository
	lookups  LookupRegistry
	cache    *CacheService // nil disables caching
}

func NewVoteService(voteRepo repository.VoteRepository, lookups LookupRegistry, cache *CacheService) VoteService {
	return &voteService{
		voteRepo: voteRepo,
		lookups:  lookups,
		cache:    cache,
	}
}

// CastVote records or changes the caller's vote on an entity. Revoting
// overwrites the existing row; the (kind, entity, user) triple never
// yields two rows.
func (s *voteService) CastVote(kind models.EntityKind, entityID int64, userID, direction string) (*dto.VoteResponse, error) {
	if !models.ValidDirection(direction) {
		return nil, apperror.ErrInvalidArgument
	}

	lookup, err := s.lookups.ForKind(kind)
	if err != nil {
		return nil, err
	}

	exists, err := lookup.Exists(entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrNotFound
	}

	owner, hasOwner, err := lookup.OwnerID(entityID)
	if err != nil {
		return nil, err
	}
	if hasOwner && owner == userID {
		return nil, apperror.ErrSelfVote
	}

	vote := &models.Vote{
		EntityKind: kind,
		EntityID:   entityID,
		UserID:     userID,
		Direction:  direction,
	}
	if err := s.voteRepo.Upsert(vote); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateVoteSummary(context.Background(), kind, entityID)
	}

	// Reload so created_at/updated_at reflect the committed row on revotes
	stored, err := s.voteRepo.GetByUserAndEntity(kind, entityID, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.GetSummary(kind, entityID)
	if err != nil {
		return nil, err
	}

	return &dto.VoteResponse{
		Direction: stored.Direction,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
		Summary:   *summary,
	}, nil
}

// RemoveVote deletes the caller's vote and reports whether one existed.
// Removing a vote that does not exist is not an error.
func (s *voteService) RemoveVote(kind models.EntityKind, entityID int64, userID string) (bool, error) {
	lookup, err := s.lookups.ForKind(kind)
	if err != nil {
		return false, err
	}

	exists, err := lookup.Exists(entityID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperror.ErrNotFound
	}

	existed, err := s.voteRepo.Delete(kind, entityID, userID)
	if err != nil {
		return false, err
	}

	if existed && s.cache != nil {
		s.cache.InvalidateVoteSummary(context.Background(), kind, entityID)
	}
	return existed, nil
}

func (s *voteService) GetUserVote(kind models.EntityKind, entityID int64, userID string) (*dto.UserVoteResponse, error) {
	if _, err := s.lookups.ForKind(kind); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.GetByUserAndEntity(kind, entityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserVoteResponse(vote), nil
}

// GetSummary aggregates the entity's tallies. Percentages are rounded to
// one decimal and both zero when nobody has voted.
func (s *voteService) GetSummary(kind models.EntityKind, entityID int64) (*dto.VoteSummaryResponse, error) {
	lookup, err := s.lookups.ForKind(kind)
	if err != nil {
		return nil, err
	}

	exists, err := lookup.Exists(entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrNotFound
	}

	ctx := context.Background()
	if s.cache != nil {
		if cached, ok := s.cache.GetVoteSummary(ctx, kind, entityID); ok {
			return cached, nil
		}
	}

	upvotes, downvotes, err := s.voteRepo.CountByDirection(kind, entityID)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(upvotes, downvotes)
	if s.cache != nil {
		s.cache.SetVoteSummary(ctx, kind, entityID, summary)
	}
	return summary, nil
}

func buildSummary(upvotes, downvotes int64) *dto.VoteSummaryResponse {
	total := upvotes + downvotes
	summary := &dto.VoteSummaryResponse{
		Upvotes:   upvotes,
		Downvotes: downvotes,
		Total:     total,
		Score:     upvotes - downvotes,
	}
	if total > 0 {
		summary.UpvotePct = roundOneDecimal(float64(upvotes) / float64(total) * 100)
		summary.DownvotePct = roundOneDecimal(float64(downvotes) / float64(total) * 100)
	}
	return summary
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
