package dto

import (
	"time"

	"buildhub/internal/api/models"
)

// CastVoteDTO for creating or changing a vote
type CastVoteDTO struct {
	Direction string `json:"direction" binding:"required,oneof=upvote downvote"`
}

// VoteResponse returns the caller's vote together with the fresh tallies
type VoteResponse struct {
	Direction string              `json:"direction"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Summary   VoteSummaryResponse `json:"summary"`
}

// UserVoteResponse for returning the user's own vote
type UserVoteResponse struct {
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToUserVoteResponse converts a Vote model to UserVoteResponse DTO
func FromModelToUserVoteResponse(vote *models.Vote) *UserVoteResponse {
	return &UserVoteResponse{
		Direction: vote.Direction,
		CreatedAt: vote.CreatedAt,
		UpdatedAt: vote.UpdatedAt,
	}
}

// VoteSummaryResponse is the aggregated tally for one entity. Percentages
// are rounded to one decimal and both zero when there are no votes.
type VoteSummaryResponse struct {
	Upvotes     int64   `json:"upvotes"`
	Downvotes   int64   `json:"downvotes"`
	Total       int64   `json:"total"`
	Score       int64   `json:"score"`
	UpvotePct   float64 `json:"upvote_pct"`
	DownvotePct float64 `json:"downvote_pct"`
}
