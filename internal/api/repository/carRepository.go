package repository

import (
	"buildhub/internal/api/models"

	"gorm.io/gorm"
)

// CarFilter narrows List results; zero values mean no filter.
type CarFilter struct {
	CategoryID int64
	OwnerID    string
	Make       string
}

type CarRepository interface {
	Create(car *models.Car) error
	Update(car *models.Car) error
	Delete(id int64) error
	GetByID(id int64) (*models.Car, error)
	List(filter CarFilter, page, pageSize int) ([]models.Car, int64, error)
	Exists(id int64) (bool, error)
	OwnerID(id int64) (string, error)
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(car *models.Car) error {
	return r.db.Create(car).Error
}

func (r *carRepository) Update(car *models.Car) error {
	return r.db.Save(car).Error
}

func (r *carRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&models.Car{}).Error
}

func (r *carRepository) GetByID(id int64) (*models.Car, error) {
	var car models.Car
	err := r.db.
		Preload("Owner").
		Preload("Category").
		Where("id = ?", id).
		First(&car).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) List(filter CarFilter, page, pageSize int) ([]models.Car, int64, error) {
	query := r.db.Model(&models.Car{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Make != "" {
		query = query.Where("make ILIKE ?", filter.Make)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []models.Car
	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&cars).Error
	if err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

func (r *carRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Car{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *carRepository) OwnerID(id int64) (string, error) {
	var ownerID string
	err := r.db.Model(&models.Car{}).Where("id = ?", id).Pluck("owner_id", &ownerID).Error
	if err != nil {
		return "", err
	}
	return ownerID, nil
}
