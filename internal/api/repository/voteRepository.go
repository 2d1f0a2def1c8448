package repository

import (
	"time"

	"buildhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityVoteCounts carries all-time grouped tallies per entity.
type EntityVoteCounts struct {
	EntityID  int64
	Upvotes   int64
	Downvotes int64
}

type VoteRepository interface {
	// Upsert inserts the vote or, when the (entity_kind, entity_id, user_id)
	// row already exists, overwrites direction and updated_at. The unique
	// index keeps the triple single-rowed under concurrent writers.
	Upsert(vote *models.Vote) error
	Delete(kind models.EntityKind, entityID int64, userID string) (bool, error)
	DeleteForEntity(kind models.EntityKind, entityID int64) error
	GetByUserAndEntity(kind models.EntityKind, entityID int64, userID string) (*models.Vote, error)
	CountByDirection(kind models.EntityKind, entityID int64) (upvotes, downvotes int64, err error)
	CountsForKind(kind models.EntityKind) (map[int64]EntityVoteCounts, error)
	CountRecentDownvotes(kind models.EntityKind, since time.Time) (map[int64]int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Upsert(vote *models.Vote) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "entity_kind"},
			{Name: "entity_id"},
			{Name: "user_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"direction":  vote.Direction,
			"updated_at": time.Now(),
		}),
	}).Create(vote).Error
}

// Delete removes a user's vote and reports whether one existed.
func (r *voteRepository) Delete(kind models.EntityKind, entityID int64, userID string) (bool, error) {
	result := r.db.
		Where("entity_kind = ? AND entity_id = ? AND user_id = ?", kind, entityID, userID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteForEntity drops all votes of a destroyed entity. The reference is
// polymorphic, so the cascade is done here instead of a foreign key.
func (r *voteRepository) DeleteForEntity(kind models.EntityKind, entityID int64) error {
	return r.db.
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Delete(&models.Vote{}).Error
}

func (r *voteRepository) GetByUserAndEntity(kind models.EntityKind, entityID int64, userID string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.
		Where("entity_kind = ? AND entity_id = ? AND user_id = ?", kind, entityID, userID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) CountByDirection(kind models.EntityKind, entityID int64) (int64, int64, error) {
	var rows []struct {
		Direction string
		Count     int64
	}

	err := r.db.Model(&models.Vote{}).
		Select("direction, COUNT(*) as count").
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	var upvotes, downvotes int64
	for _, row := range rows {
		switch row.Direction {
		case models.VoteUp:
			upvotes = row.Count
		case models.VoteDown:
			downvotes = row.Count
		}
	}
	return upvotes, downvotes, nil
}

// CountsForKind returns all-time tallies grouped per entity of a kind.
func (r *voteRepository) CountsForKind(kind models.EntityKind) (map[int64]EntityVoteCounts, error) {
	var rows []struct {
		EntityID  int64
		Direction string
		Count     int64
	}

	err := r.db.Model(&models.Vote{}).
		Select("entity_id, direction, COUNT(*) as count").
		Where("entity_kind = ?", kind).
		Group("entity_id, direction").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]EntityVoteCounts, len(rows))
	for _, row := range rows {
		c := counts[row.EntityID]
		c.EntityID = row.EntityID
		switch row.Direction {
		case models.VoteUp:
			c.Upvotes = row.Count
		case models.VoteDown:
			c.Downvotes = row.Count
		}
		counts[row.EntityID] = c
	}
	return counts, nil
}

// CountRecentDownvotes returns downvote counts per entity since the cutoff.
func (r *voteRepository) CountRecentDownvotes(kind models.EntityKind, since time.Time) (map[int64]int64, error) {
	var rows []struct {
		EntityID int64
		Count    int64
	}

	err := r.db.Model(&models.Vote{}).
		Select("entity_id, COUNT(*) as count").
		Where("entity_kind = ? AND direction = ? AND updated_at >= ?", kind, models.VoteDown, since).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.EntityID] = row.Count
	}
	return counts, nil
}
