package repository

import (
	"time"

	"buildhub/internal/api/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *models.Report) error
	Update(report *models.Report) error
	GetByID(id string) (*models.Report, error)
	HasPending(kind models.EntityKind, entityID int64, reporterID string) (bool, error)
	List(status string, page, pageSize int) ([]models.Report, int64, error)
	ReportedEntityIDsSince(kind models.EntityKind, since time.Time) ([]int64, error)
	PendingEntityIDs(kind models.EntityKind) ([]int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) GetByID(id string) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// HasPending reports whether the reporter already has an open report
// against the entity. Resolved or dismissed history does not count.
func (r *reportRepository) HasPending(kind models.EntityKind, entityID int64, reporterID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("entity_kind = ? AND entity_id = ? AND reporter_user_id = ? AND status = ?",
			kind, entityID, reporterID, models.ReportStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves reports with optional status filter and pagination.
func (r *reportRepository) List(status string, page, pageSize int) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	offset := (page - 1) * pageSize
	err := query.
		Preload("Reporter").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// ReportedEntityIDsSince returns distinct entities of a kind with at least
// one report created after the cutoff, regardless of status.
func (r *reportRepository) ReportedEntityIDsSince(kind models.EntityKind, since time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&models.Report{}).
		Distinct("entity_id").
		Where("entity_kind = ? AND created_at >= ?", kind, since).
		Pluck("entity_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// PendingEntityIDs returns distinct entities of a kind with open reports.
func (r *reportRepository) PendingEntityIDs(kind models.EntityKind) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&models.Report{}).
		Distinct("entity_id").
		Where("entity_kind = ? AND status = ?", kind, models.ReportStatusPending).
		Pluck("entity_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
