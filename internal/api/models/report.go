package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

const (
	ReportReasonInappropriate = "inappropriate_content"
	ReportReasonSpam          = "spam"
	ReportReasonInaccurate    = "inaccurate"
	ReportReasonDuplicate     = "duplicate"
	ReportReasonOther         = "other"
)

// Report rows are never deleted; resolved and dismissed reports stay as the
// audit trail. Only one pending report per reporter per entity is allowed.
type Report struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	EntityKind     EntityKind `gorm:"size:20;not null;index:idx_reports_entity" json:"entity_kind"`
	EntityID       int64      `gorm:"not null;index:idx_reports_entity" json:"entity_id"`
	ReporterUserID string     `gorm:"type:uuid;not null;index" json:"reporter_user_id"`
	Reason         string     `gorm:"size:30;not null" json:"reason"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	Status         string     `gorm:"size:15;not null;default:'pending';index" json:"status"`
	AdminNotes     string     `gorm:"type:text" json:"admin_notes,omitempty"`
	ReviewedBy     *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Reporter User `json:"reporter,omitempty" gorm:"foreignKey:ReporterUserID"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Report) TableName() string {
	return "reports"
}

func ValidReportReason(reason string) bool {
	switch reason {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonInaccurate,
		ReportReasonDuplicate, ReportReasonOther:
		return true
	}
	return false
}

func ValidReportStatus(status string) bool {
	switch status {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}
