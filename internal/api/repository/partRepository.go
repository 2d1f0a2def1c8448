package repository

import (
	"buildhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartFilter struct {
	CategoryID   int64
	Manufacturer string
}

type PartRepository interface {
	Create(part *models.Part) error
	Update(part *models.Part) error
	Delete(id int64) error
	GetByID(id int64) (*models.Part, error)
	List(filter PartFilter, page, pageSize int) ([]models.Part, int64, error)
	Exists(id int64) (bool, error)
	// UpsertByExternalRef keys on the upstream catalog reference so repeated
	// sync runs converge instead of duplicating rows.
	UpsertByExternalRef(part *models.Part) error
}

type partRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(part *models.Part) error {
	return r.db.Create(part).Error
}

func (r *partRepository) Update(part *models.Part) error {
	return r.db.Save(part).Error
}

func (r *partRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&models.Part{}).Error
}

func (r *partRepository) GetByID(id int64) (*models.Part, error) {
	var part models.Part
	err := r.db.
		Preload("Category").
		Where("id = ?", id).
		First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) List(filter PartFilter, page, pageSize int) ([]models.Part, int64, error) {
	query := r.db.Model(&models.Part{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Manufacturer != "" {
		query = query.Where("manufacturer ILIKE ?", filter.Manufacturer)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parts []models.Part
	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Order("name ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&parts).Error
	if err != nil {
		return nil, 0, err
	}

	return parts, total, nil
}

func (r *partRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Part{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *partRepository) UpsertByExternalRef(part *models.Part) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_ref"}},
		DoUpdates: clause.AssignmentColumns([]string{"category_id", "manufacturer", "name", "spec", "updated_at"}),
	}).Create(part).Error
}
