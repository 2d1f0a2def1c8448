package service

import (
	"errors"
	"sort"
	"time"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

const (
	MinLookbackDays = 1
	MaxLookbackDays = 365
	MinDownvotesLow = 1
	MinDownvotesCap = 100
)

type ModerationService interface {
	CreateReport(kind models.EntityKind, entityID int64, reporterID, reason, description string) (*dto.ReportResponse, error)
	UpdateReportStatus(reportID, newStatus, adminNotes, reviewerID string) (*dto.ReportResponse, error)
	ListReports(status string, page, pageSize int) ([]dto.ReportResponse, int64, error)
	FlaggedEntities(kind models.EntityKind, lookbackDays, minDownvotes int) ([]dto.FlaggedSummary, error)
}

type moderationService struct {
	reportRepo repository.ReportRepository
	voteRepo   repository.VoteRepository
	lookups    LookupRegistry
	now        func() time.Time
}

func NewModerationService(
	reportRepo repository.ReportRepository,
	voteRepo repository.VoteRepository,
	lookups LookupRegistry,
) ModerationService {
	return &moderationService{
		reportRepo: reportRepo,
		voteRepo:   voteRepo,
		lookups:    lookups,
		now:        time.Now,
	}
}

// CreateReport validates before anything is written: bad reason, missing
// entity, self-report and duplicate pending all reject without a row.
func (s *moderationService) CreateReport(kind models.EntityKind, entityID int64, reporterID, reason, description string) (*dto.ReportResponse, error) {
	if !models.ValidReportReason(reason) {
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
	if hasOwner && owner == reporterID {
		return nil, apperror.ErrSelfReport
	}

	pending, err := s.reportRepo.HasPending(kind, entityID, reporterID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.ErrDuplicatePending
	}

	report := &models.Report{
		EntityKind:     kind,
		EntityID:       entityID,
		ReporterUserID: reporterID,
		Reason:         reason,
		Description:    description,
		Status:         models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	return dto.FromModelToReportResponse(report), nil
}

// UpdateReportStatus moves a report to any of the four statuses. The
// transition set is deliberately flat; there is no pipeline ordering.
// Leaving pending stamps reviewed_by and reviewed_at.
func (s *moderationService) UpdateReportStatus(reportID, newStatus, adminNotes, reviewerID string) (*dto.ReportResponse, error) {
	if !models.ValidReportStatus(newStatus) {
		return nil, apperror.ErrInvalidArgument
	}

	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	leavingPending := report.Status == models.ReportStatusPending && newStatus != models.ReportStatusPending

	report.Status = newStatus
	if adminNotes != "" {
		report.AdminNotes = adminNotes
	}
	if leavingPending {
		reviewedAt := s.now()
		report.ReviewedBy = &reviewerID
		report.ReviewedAt = &reviewedAt
	}

	if err := s.reportRepo.Update(report); err != nil {
		return nil, err
	}
	return dto.FromModelToReportResponse(report), nil
}

func (s *moderationService) ListReports(status string, page, pageSize int) ([]dto.ReportResponse, int64, error) {
	if status != "" && !models.ValidReportStatus(status) {
		return nil, 0, apperror.ErrInvalidArgument
	}

	reports, total, err := s.reportRepo.List(status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *dto.FromModelToReportResponse(&reports[i]))
	}
	return responses, total, nil
}

// FlaggedEntities is the review queue: an entity qualifies when its
// all-time downvote count reaches the threshold, or when anyone reported
// it within the lookback window. Vote tallies are all-time; only the
// recent-downvote figure and report recency are windowed. The listing is
// recomputed in full on every call.
func (s *moderationService) FlaggedEntities(kind models.EntityKind, lookbackDays, minDownvotes int) ([]dto.FlaggedSummary, error) {
	if lookbackDays < MinLookbackDays || lookbackDays > MaxLookbackDays {
		return nil, apperror.ErrInvalidArgument
	}
	if minDownvotes < MinDownvotesLow || minDownvotes > MinDownvotesCap {
		return nil, apperror.ErrInvalidArgument
	}
	if _, err := s.lookups.ForKind(kind); err != nil {
		return nil, err
	}

	computedAt := s.now()
	since := computedAt.Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	counts, err := s.voteRepo.CountsForKind(kind)
	if err != nil {
		return nil, err
	}
	recentDownvotes, err := s.voteRepo.CountRecentDownvotes(kind, since)
	if err != nil {
		return nil, err
	}
	recentlyReported, err := s.reportRepo.ReportedEntityIDsSince(kind, since)
	if err != nil {
		return nil, err
	}
	pendingIDs, err := s.reportRepo.PendingEntityIDs(kind)
	if err != nil {
		return nil, err
	}

	reportedSet := make(map[int64]bool, len(recentlyReported))
	for _, id := range recentlyReported {
		reportedSet[id] = true
	}
	pendingSet := make(map[int64]bool, len(pendingIDs))
	for _, id := range pendingIDs {
		pendingSet[id] = true
	}

	// Candidates come from both sides: voted-on entities and entities whose
	// only signal is a recent report.
	candidates := make(map[int64]bool, len(counts)+len(reportedSet))
	for id := range counts {
		candidates[id] = true
	}
	for id := range reportedSet {
		candidates[id] = true
	}

	flagged := make([]dto.FlaggedSummary, 0)
	for id := range candidates {
		c := counts[id]
		if c.Downvotes < int64(minDownvotes) && !reportedSet[id] {
			continue
		}

		total := c.Upvotes + c.Downvotes
		summary := dto.FlaggedSummary{
			EntityID:          id,
			Upvotes:           c.Upvotes,
			Downvotes:         c.Downvotes,
			TotalVotes:        total,
			Score:             c.Upvotes - c.Downvotes,
			RecentDownvotes:   recentDownvotes[id],
			HasPendingReports: pendingSet[id],
			ComputedAt:        computedAt,
		}
		if total > 0 {
			summary.DownvoteRatio = float64(c.Downvotes) / float64(total)
		}
		flagged = append(flagged, summary)
	}

	// Downvote count descending; the id tiebreak is arbitrary but keeps
	// listings stable between calls.
	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].Downvotes != flagged[j].Downvotes {
			return flagged[i].Downvotes > flagged[j].Downvotes
		}
		return flagged[i].EntityID < flagged[j].EntityID
	})

	return flagged, nil
}
