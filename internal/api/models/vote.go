package models

import "time"

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote holds at most one row per (entity_kind, entity_id, user_id); a
// revote overwrites direction and updated_at through the unique index
// rather than inserting a second row.
type Vote struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	EntityKind EntityKind `json:"entity_kind" gorm:"size:20;not null;uniqueIndex:idx_votes_entity_user"`
	EntityID   int64      `json:"entity_id" gorm:"not null;uniqueIndex:idx_votes_entity_user"`
	UserID     string     `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_entity_user"`
	Direction  string     `json:"direction" gorm:"size:10;not null;check:direction IN ('upvote','downvote')"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Vote) TableName() string {
	return "votes"
}

func ValidDirection(direction string) bool {
	return direction == VoteUp || direction == VoteDown
}
