package service

import (
	"errors"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

// Parts form a global catalog; create/update/delete are admin operations,
// reads are public.
type PartService interface {
	Create(req *dto.CreatePartDTO) (*dto.PartResponse, error)
	Update(partID int64, req *dto.UpdatePartDTO) (*dto.PartResponse, error)
	Delete(partID int64) error
	GetByID(partID int64) (*dto.PartResponse, error)
	List(filter repository.PartFilter, page, pageSize int) (*dto.Paginated[dto.PartResponse], error)
}

type partService struct {
	partRepo     repository.PartRepository
	categoryRepo repository.CategoryRepository
	voteRepo     repository.VoteRepository
}

func NewPartService(
	partRepo repository.PartRepository,
	categoryRepo repository.CategoryRepository,
	voteRepo repository.VoteRepository,
) PartService {
	return &partService{
		partRepo:     partRepo,
		categoryRepo: categoryRepo,
		voteRepo:     voteRepo,
	}
}

func (s *partService) Create(req *dto.CreatePartDTO) (*dto.PartResponse, error) {
	exists, err := s.categoryRepo.Exists(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrNotFound
	}

	part := &models.Part{
		CategoryID:   req.CategoryID,
		Manufacturer: req.Manufacturer,
		Name:         req.Name,
		Spec:         req.Spec,
	}
	if err := s.partRepo.Create(part); err != nil {
		return nil, err
	}
	return s.GetByID(part.ID)
}

func (s *partService) Update(partID int64, req *dto.UpdatePartDTO) (*dto.PartResponse, error) {
	part, err := s.getModel(partID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.ErrNotFound
		}
		part.CategoryID = *req.CategoryID
	}
	if req.Manufacturer != nil {
		part.Manufacturer = *req.Manufacturer
	}
	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.Spec != nil {
		part.Spec = *req.Spec
	}

	if err := s.partRepo.Update(part); err != nil {
		return nil, err
	}
	return s.GetByID(partID)
}

func (s *partService) Delete(partID int64) error {
	if _, err := s.getModel(partID); err != nil {
		return err
	}
	if err := s.partRepo.Delete(partID); err != nil {
		return err
	}
	return s.voteRepo.DeleteForEntity(models.EntityKindPart, partID)
}

func (s *partService) GetByID(partID int64) (*dto.PartResponse, error) {
	part, err := s.getModel(partID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToPartResponse(part), nil
}

func (s *partService) List(filter repository.PartFilter, page, pageSize int) (*dto.Paginated[dto.PartResponse], error) {
	parts, total, err := s.partRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		responses = append(responses, *dto.FromModelToPartResponse(&parts[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *partService) getModel(partID int64) (*models.Part, error) {
	part, err := s.partRepo.GetByID(partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return part, nil
}
