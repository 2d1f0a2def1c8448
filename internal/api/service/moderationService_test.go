package service

import (
	"fmt"
	"testing"
	"time"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeReportRepo is an in-memory report ledger.
type fakeReportRepo struct {
	reports []*models.Report
	nextID  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{}
}

func (f *fakeReportRepo) Create(report *models.Report) error {
	f.nextID++
	report.ID = fmt.Sprintf("report-%d", f.nextID)
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	stored := *report
	f.reports = append(f.reports, &stored)
	return nil
}

func (f *fakeReportRepo) Update(report *models.Report) error {
	for i, r := range f.reports {
		if r.ID == report.ID {
			updated := *report
			updated.UpdatedAt = time.Now()
			f.reports[i] = &updated
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) GetByID(id string) (*models.Report, error) {
	for _, r := range f.reports {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) HasPending(kind models.EntityKind, entityID int64, reporterID string) (bool, error) {
	for _, r := range f.reports {
		if r.EntityKind == kind && r.EntityID == entityID &&
			r.ReporterUserID == reporterID && r.Status == models.ReportStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportRepo) List(status string, page, pageSize int) ([]models.Report, int64, error) {
	var matched []models.Report
	for _, r := range f.reports {
		if status == "" || r.Status == status {
			matched = append(matched, *r)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		return nil, total, nil
	}
	end := min(start+pageSize, len(matched))
	return matched[start:end], total, nil
}

func (f *fakeReportRepo) ReportedEntityIDsSince(kind models.EntityKind, since time.Time) ([]int64, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, r := range f.reports {
		if r.EntityKind == kind && r.CreatedAt.After(since) && !seen[r.EntityID] {
			seen[r.EntityID] = true
			ids = append(ids, r.EntityID)
		}
	}
	return ids, nil
}

func (f *fakeReportRepo) PendingEntityIDs(kind models.EntityKind) ([]int64, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, r := range f.reports {
		if r.EntityKind == kind && r.Status == models.ReportStatusPending && !seen[r.EntityID] {
			seen[r.EntityID] = true
			ids = append(ids, r.EntityID)
		}
	}
	return ids, nil
}

func newModerationFixture(owner string) (*fakeReportRepo, *fakeVoteRepo, ModerationService) {
	reportRepo := newFakeReportRepo()
	voteRepo := newFakeVoteRepo()
	svc := NewModerationService(reportRepo, voteRepo, carRegistry(owner))
	return reportRepo, voteRepo, svc
}

func TestCreateReport_Success(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")

	report, err := svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "spammy listing")
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, "reporter-1", report.ReporterUserID)
	assert.Nil(t, report.ReviewedBy)
}

func TestCreateReport_InvalidReason(t *testing.T) {
	reportRepo, _, svc := newModerationFixture("owner-1")

	_, err := svc.CreateReport(models.EntityKindCar, 42, "reporter-1", "because", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Empty(t, reportRepo.reports)
}

func TestCreateReport_MissingEntity(t *testing.T) {
	registry := LookupRegistry{models.EntityKindCar: stubLookup{exists: false}}
	svc := NewModerationService(newFakeReportRepo(), newFakeVoteRepo(), registry)

	_, err := svc.CreateReport(models.EntityKindCar, 999, "reporter-1", models.ReportReasonSpam, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateReport_SelfReportRejected(t *testing.T) {
	reportRepo, _, svc := newModerationFixture("reporter-1")

	_, err := svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "")
	assert.ErrorIs(t, err, apperror.ErrSelfReport)
	assert.Empty(t, reportRepo.reports)
}

func TestCreateReport_DuplicatePending(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")

	first, err := svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "")
	require.NoError(t, err)

	_, err = svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "again")
	assert.ErrorIs(t, err, apperror.ErrDuplicatePending)

	// A different reporter is not blocked.
	_, err = svc.CreateReport(models.EntityKindCar, 42, "reporter-2", models.ReportReasonSpam, "")
	assert.NoError(t, err)

	// Once the first report leaves pending, the same reporter may file anew.
	_, err = svc.UpdateReportStatus(first.ID, models.ReportStatusResolved, "", "admin-1")
	require.NoError(t, err)
	_, err = svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "")
	assert.NoError(t, err)
}

func TestUpdateReportStatus_StampsReviewOnLeavingPending(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")
	reviewTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.(*moderationService).now = func() time.Time { return reviewTime }

	report, err := svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "")
	require.NoError(t, err)

	updated, err := svc.UpdateReportStatus(report.ID, models.ReportStatusResolved, "cleaned up", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusResolved, updated.Status)
	assert.Equal(t, "cleaned up", updated.AdminNotes)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, "admin-1", *updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, reviewTime, *updated.ReviewedAt)
}

func TestUpdateReportStatus_FlatTransitionGraph(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")

	report, err := svc.CreateReport(models.EntityKindCar, 42, "reporter-1", models.ReportReasonSpam, "")
	require.NoError(t, err)

	// Any status can move to any other, including back to pending.
	updated, err := svc.UpdateReportStatus(report.ID, models.ReportStatusDismissed, "", "admin-1")
	require.NoError(t, err)
	firstReviewedBy := updated.ReviewedBy

	updated, err = svc.UpdateReportStatus(report.ID, models.ReportStatusPending, "", "admin-2")
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, updated.Status)
	// The original review stamp survives the trip back to pending.
	assert.Equal(t, firstReviewedBy, updated.ReviewedBy)

	// Leaving pending a second time restamps with the new reviewer.
	updated, err = svc.UpdateReportStatus(report.ID, models.ReportStatusReviewed, "", "admin-2")
	require.NoError(t, err)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, "admin-2", *updated.ReviewedBy)
}

func TestUpdateReportStatus_Invalid(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")

	_, err := svc.UpdateReportStatus("report-1", "archived", "", "admin-1")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.UpdateReportStatus("no-such-report", models.ReportStatusResolved, "", "admin-1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListReports_InvalidStatusFilter(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")

	_, _, err := svc.ListReports("archived", 1, 20)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func castDownvotes(t *testing.T, voteRepo *fakeVoteRepo, entityID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := voteRepo.Upsert(&models.Vote{
			EntityKind: models.EntityKindCar,
			EntityID:   entityID,
			UserID:     fmt.Sprintf("voter-%d-%d", entityID, i),
			Direction:  models.VoteDown,
		})
		require.NoError(t, err)
	}
}

func TestFlaggedEntities_DownvoteThreshold(t *testing.T) {
	_, voteRepo, svc := newModerationFixture("owner-1")

	castDownvotes(t, voteRepo, 1, 6)
	castDownvotes(t, voteRepo, 2, 4)

	flagged, err := svc.FlaggedEntities(models.EntityKindCar, 7, 5)
	require.NoError(t, err)

	require.Len(t, flagged, 1)
	assert.Equal(t, int64(1), flagged[0].EntityID)
	assert.Equal(t, int64(6), flagged[0].Downvotes)
	assert.Equal(t, 1.0, flagged[0].DownvoteRatio)
}

func TestFlaggedEntities_RecentReportQualifies(t *testing.T) {
	reportRepo, voteRepo, svc := newModerationFixture("owner-1")

	// One downvote, far below threshold, but reported yesterday.
	castDownvotes(t, voteRepo, 3, 1)
	_, err := svc.CreateReport(models.EntityKindCar, 3, "reporter-1", models.ReportReasonSpam, "")
	require.NoError(t, err)

	// Entity 4 carries only a stale report from outside the window.
	err = reportRepo.Create(&models.Report{
		EntityKind:     models.EntityKindCar,
		EntityID:       4,
		ReporterUserID: "reporter-2",
		Reason:         models.ReportReasonSpam,
		Status:         models.ReportStatusResolved,
	})
	require.NoError(t, err)
	reportRepo.reports[len(reportRepo.reports)-1].CreatedAt = time.Now().Add(-30 * 24 * time.Hour)

	flagged, err := svc.FlaggedEntities(models.EntityKindCar, 7, 5)
	require.NoError(t, err)

	require.Len(t, flagged, 1)
	assert.Equal(t, int64(3), flagged[0].EntityID)
	assert.True(t, flagged[0].HasPendingReports)
	assert.Equal(t, int64(1), flagged[0].RecentDownvotes)
}

func TestFlaggedEntities_SortedByDownvotesThenID(t *testing.T) {
	_, voteRepo, svc := newModerationFixture("owner-1")

	castDownvotes(t, voteRepo, 10, 5)
	castDownvotes(t, voteRepo, 5, 8)
	castDownvotes(t, voteRepo, 2, 5)

	flagged, err := svc.FlaggedEntities(models.EntityKindCar, 7, 5)
	require.NoError(t, err)

	require.Len(t, flagged, 3)
	assert.Equal(t, int64(5), flagged[0].EntityID)
	// Equal downvote counts fall back to ascending id.
	assert.Equal(t, int64(2), flagged[1].EntityID)
	assert.Equal(t, int64(10), flagged[2].EntityID)
}

func TestFlaggedEntities_ParameterBounds(t *testing.T) {
	_, _, svc := newModerationFixture("owner-1")

	for _, tc := range []struct {
		lookbackDays int
		minDownvotes int
	}{
		{0, 5},
		{366, 5},
		{7, 0},
		{7, 101},
	} {
		_, err := svc.FlaggedEntities(models.EntityKindCar, tc.lookbackDays, tc.minDownvotes)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument,
			"lookbackDays=%d minDownvotes=%d", tc.lookbackDays, tc.minDownvotes)
	}

	// Boundary values themselves are accepted.
	_, err := svc.FlaggedEntities(models.EntityKindCar, 1, 1)
	assert.NoError(t, err)
	_, err = svc.FlaggedEntities(models.EntityKindCar, 365, 100)
	assert.NoError(t, err)
}
