package service

import (
	"errors"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

type CarService interface {
	Create(ownerID string, req *dto.CreateCarDTO) (*dto.CarResponse, error)
	Update(callerID, callerRole string, carID int64, req *dto.UpdateCarDTO) (*dto.CarResponse, error)
	Delete(callerID, callerRole string, carID int64) error
	GetByID(carID int64) (*dto.CarResponse, error)
	List(filter repository.CarFilter, page, pageSize int) (*dto.Paginated[dto.CarResponse], error)
}

type carService struct {
	carRepo      repository.CarRepository
	categoryRepo repository.CategoryRepository
	voteRepo     repository.VoteRepository
}

func NewCarService(
	carRepo repository.CarRepository,
	categoryRepo repository.CategoryRepository,
	voteRepo repository.VoteRepository,
) CarService {
	return &carService{
		carRepo:      carRepo,
		categoryRepo: categoryRepo,
		voteRepo:     voteRepo,
	}
}

func (s *carService) Create(ownerID string, req *dto.CreateCarDTO) (*dto.CarResponse, error) {
	exists, err := s.categoryRepo.Exists(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrNotFound
	}

	car := &models.Car{
		OwnerID:     ownerID,
		CategoryID:  req.CategoryID,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
	}
	if err := s.carRepo.Create(car); err != nil {
		return nil, err
	}

	return s.GetByID(car.ID)
}

func (s *carService) Update(callerID, callerRole string, carID int64, req *dto.UpdateCarDTO) (*dto.CarResponse, error) {
	car, err := s.getModel(carID)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != callerID && callerRole != models.RoleAdmin {
		return nil, apperror.ErrDenied
	}

	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.ErrNotFound
		}
		car.CategoryID = *req.CategoryID
	}
	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Description != nil {
		car.Description = *req.Description
	}

	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}
	return s.GetByID(carID)
}

// Delete removes the car and cascades its votes. Reports stay as the
// audit trail.
func (s *carService) Delete(callerID, callerRole string, carID int64) error {
	car, err := s.getModel(carID)
	if err != nil {
		return err
	}
	if car.OwnerID != callerID && callerRole != models.RoleAdmin {
		return apperror.ErrDenied
	}

	if err := s.carRepo.Delete(carID); err != nil {
		return err
	}
	return s.voteRepo.DeleteForEntity(models.EntityKindCar, carID)
}

func (s *carService) GetByID(carID int64) (*dto.CarResponse, error) {
	car, err := s.getModel(carID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCarResponse(car), nil
}

func (s *carService) List(filter repository.CarFilter, page, pageSize int) (*dto.Paginated[dto.CarResponse], error) {
	cars, total, err := s.carRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CarResponse, 0, len(cars))
	for i := range cars {
		responses = append(responses, *dto.FromModelToCarResponse(&cars[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *carService) getModel(carID int64) (*models.Car, error) {
	car, err := s.carRepo.GetByID(carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}
