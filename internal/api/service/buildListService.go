package service

import (
	"errors"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

// FreeTierBuildListLimit caps build lists for free accounts; pro removes
// the cap.
const FreeTierBuildListLimit = 3

type BuildListService interface {
	Create(ownerID, ownerTier string, req *dto.CreateBuildListDTO) (*dto.BuildListResponse, error)
	Update(callerID, callerRole string, listID int64, req *dto.UpdateBuildListDTO) (*dto.BuildListResponse, error)
	Delete(callerID, callerRole string, listID int64) error
	GetByID(listID int64) (*dto.BuildListResponse, error)
	List(ownerID string, carID int64, page, pageSize int) (*dto.Paginated[dto.BuildListResponse], error)
}

type buildListService struct {
	buildListRepo repository.BuildListRepository
	carRepo       repository.CarRepository
	partRepo      repository.PartRepository
	voteRepo      repository.VoteRepository
}

func NewBuildListService(
	buildListRepo repository.BuildListRepository,
	carRepo repository.CarRepository,
	partRepo repository.PartRepository,
	voteRepo repository.VoteRepository,
) BuildListService {
	return &buildListService{
		buildListRepo: buildListRepo,
		carRepo:       carRepo,
		partRepo:      partRepo,
		voteRepo:      voteRepo,
	}
}

func (s *buildListService) Create(ownerID, ownerTier string, req *dto.CreateBuildListDTO) (*dto.BuildListResponse, error) {
	if ownerTier != models.TierPro {
		count, err := s.buildListRepo.CountByOwner(ownerID)
		if err != nil {
			return nil, err
		}
		if count >= FreeTierBuildListLimit {
			return nil, apperror.ErrUpgradeRequired
		}
	}

	carExists, err := s.carRepo.Exists(req.CarID)
	if err != nil {
		return nil, err
	}
	if !carExists {
		return nil, apperror.ErrNotFound
	}

	parts, err := s.resolveParts(req.PartIDs)
	if err != nil {
		return nil, err
	}

	list := &models.BuildList{
		OwnerID:     ownerID,
		CarID:       req.CarID,
		Title:       req.Title,
		Description: req.Description,
		Parts:       parts,
	}
	if err := s.buildListRepo.Create(list); err != nil {
		return nil, err
	}

	return s.GetByID(list.ID)
}

func (s *buildListService) Update(callerID, callerRole string, listID int64, req *dto.UpdateBuildListDTO) (*dto.BuildListResponse, error) {
	list, err := s.getModel(listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != callerID && callerRole != models.RoleAdmin {
		return nil, apperror.ErrDenied
	}

	if req.Title != nil {
		list.Title = *req.Title
	}
	if req.Description != nil {
		list.Description = *req.Description
	}
	if err := s.buildListRepo.Update(list); err != nil {
		return nil, err
	}

	if req.PartIDs != nil {
		parts, err := s.resolveParts(*req.PartIDs)
		if err != nil {
			return nil, err
		}
		if err := s.buildListRepo.ReplaceParts(list, parts); err != nil {
			return nil, err
		}
	}

	return s.GetByID(listID)
}

func (s *buildListService) Delete(callerID, callerRole string, listID int64) error {
	list, err := s.getModel(listID)
	if err != nil {
		return err
	}
	if list.OwnerID != callerID && callerRole != models.RoleAdmin {
		return apperror.ErrDenied
	}

	if err := s.buildListRepo.Delete(listID); err != nil {
		return err
	}
	return s.voteRepo.DeleteForEntity(models.EntityKindBuildList, listID)
}

func (s *buildListService) GetByID(listID int64) (*dto.BuildListResponse, error) {
	list, err := s.getModel(listID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToBuildListResponse(list), nil
}

func (s *buildListService) List(ownerID string, carID int64, page, pageSize int) (*dto.Paginated[dto.BuildListResponse], error) {
	lists, total, err := s.buildListRepo.List(ownerID, carID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BuildListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, *dto.FromModelToBuildListResponse(&lists[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *buildListService) resolveParts(partIDs []int64) ([]models.Part, error) {
	parts := make([]models.Part, 0, len(partIDs))
	for _, id := range partIDs {
		part, err := s.partRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrNotFound
			}
			return nil, err
		}
		parts = append(parts, *part)
	}
	return parts, nil
}

func (s *buildListService) getModel(listID int64) (*models.BuildList, error) {
	list, err := s.buildListRepo.GetByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return list, nil
}
