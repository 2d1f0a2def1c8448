package dto

import (
	"time"

	"buildhub/internal/api/models"
)

// CreateReportDTO for submitting a moderation report
type CreateReportDTO struct {
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description" binding:"max=2000"`
}

// ReviewReportDTO for an admin transitioning a report's status
type ReviewReportDTO struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes" binding:"max=2000"`
}

// ReportResponse for returning report information
type ReportResponse struct {
	ID             string            `json:"id"`
	EntityKind     models.EntityKind `json:"entity_kind"`
	EntityID       int64             `json:"entity_id"`
	ReporterUserID string            `json:"reporter_user_id"`
	Reason         string            `json:"reason"`
	Description    string            `json:"description,omitempty"`
	Status         string            `json:"status"`
	AdminNotes     string            `json:"admin_notes,omitempty"`
	ReviewedBy     *string           `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// FromModelToReportResponse converts a Report model to ReportResponse DTO
func FromModelToReportResponse(report *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:             report.ID,
		EntityKind:     report.EntityKind,
		EntityID:       report.EntityID,
		ReporterUserID: report.ReporterUserID,
		Reason:         report.Reason,
		Description:    report.Description,
		Status:         report.Status,
		AdminNotes:     report.AdminNotes,
		ReviewedBy:     report.ReviewedBy,
		ReviewedAt:     report.ReviewedAt,
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
}

// FlaggedSummary is a read-time projection over votes and reports; it is
// never persisted and always recomputed per request.
type FlaggedSummary struct {
	EntityID          int64     `json:"entity_id"`
	Upvotes           int64     `json:"upvotes"`
	Downvotes         int64     `json:"downvotes"`
	TotalVotes        int64     `json:"total_votes"`
	Score             int64     `json:"score"`
	DownvoteRatio     float64   `json:"downvote_ratio"`
	RecentDownvotes   int64     `json:"recent_downvotes"`
	HasPendingReports bool      `json:"has_pending_reports"`
	ComputedAt        time.Time `json:"computed_at"`
}
