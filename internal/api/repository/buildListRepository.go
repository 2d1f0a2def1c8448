package repository

import (
	"buildhub/internal/api/models"

	"gorm.io/gorm"
)

type BuildListRepository interface {
	Create(list *models.BuildList) error
	Update(list *models.BuildList) error
	Delete(id int64) error
	GetByID(id int64) (*models.BuildList, error)
	List(ownerID string, carID int64, page, pageSize int) ([]models.BuildList, int64, error)
	Exists(id int64) (bool, error)
	OwnerID(id int64) (string, error)
	CountByOwner(ownerID string) (int64, error)
	ReplaceParts(list *models.BuildList, parts []models.Part) error
}

type buildListRepository struct {
	db *gorm.DB
}

func NewBuildListRepository(db *gorm.DB) BuildListRepository {
	return &buildListRepository{db: db}
}

func (r *buildListRepository) Create(list *models.BuildList) error {
	return r.db.Create(list).Error
}

func (r *buildListRepository) Update(list *models.BuildList) error {
	return r.db.Save(list).Error
}

func (r *buildListRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&models.BuildList{}).Error
}

func (r *buildListRepository) GetByID(id int64) (*models.BuildList, error) {
	var list models.BuildList
	err := r.db.
		Preload("Owner").
		Preload("Car").
		Preload("Parts").
		Where("id = ?", id).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *buildListRepository) List(ownerID string, carID int64, page, pageSize int) ([]models.BuildList, int64, error) {
	query := r.db.Model(&models.BuildList{})
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	if carID != 0 {
		query = query.Where("car_id = ?", carID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []models.BuildList
	offset := (page - 1) * pageSize
	err := query.
		Preload("Car").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}

	return lists, total, nil
}

func (r *buildListRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.BuildList{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *buildListRepository) OwnerID(id int64) (string, error) {
	var ownerID string
	err := r.db.Model(&models.BuildList{}).Where("id = ?", id).Pluck("owner_id", &ownerID).Error
	if err != nil {
		return "", err
	}
	return ownerID, nil
}

func (r *buildListRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.BuildList{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// ReplaceParts swaps the full part set of a build list.
func (r *buildListRepository) ReplaceParts(list *models.BuildList, parts []models.Part) error {
	return r.db.Model(list).Association("Parts").Replace(parts)
}
