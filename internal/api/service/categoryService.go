package service

import (
	"errors"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	Create(req *dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(categoryID int64) error
	GetByID(categoryID int64) (*dto.CategoryResponse, error)
	List() ([]dto.CategoryResponse, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(req *dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(categoryID int64) error {
	exists, err := s.categoryRepo.Exists(categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrNotFound
	}
	return s.categoryRepo.Delete(categoryID)
}

func (s *categoryService) GetByID(categoryID int64) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) List() ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return responses, nil
}
