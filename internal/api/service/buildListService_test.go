package service

import (
	"testing"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBuildListRepository mocks the BuildListRepository interface
type MockBuildListRepository struct {
	mock.Mock
}

func (m *MockBuildListRepository) Create(list *models.BuildList) error {
	args := m.Called(list)
	list.ID = 1
	return args.Error(0)
}

func (m *MockBuildListRepository) Update(list *models.BuildList) error {
	args := m.Called(list)
	return args.Error(0)
}

func (m *MockBuildListRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBuildListRepository) GetByID(id int64) (*models.BuildList, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildList), args.Error(1)
}

func (m *MockBuildListRepository) List(ownerID string, carID int64, page, pageSize int) ([]models.BuildList, int64, error) {
	args := m.Called(ownerID, carID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.BuildList), args.Get(1).(int64), args.Error(2)
}

func (m *MockBuildListRepository) Exists(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBuildListRepository) OwnerID(id int64) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockBuildListRepository) CountByOwner(ownerID string) (int64, error) {
	args := m.Called(ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBuildListRepository) ReplaceParts(list *models.BuildList, parts []models.Part) error {
	args := m.Called(list, parts)
	return args.Error(0)
}

// MockCarRepository mocks the CarRepository interface
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(car *models.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepository) Update(car *models.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCarRepository) GetByID(id int64) (*models.Car, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarRepository) List(filter repository.CarFilter, page, pageSize int) ([]models.Car, int64, error) {
	args := m.Called(filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Car), args.Get(1).(int64), args.Error(2)
}

func (m *MockCarRepository) Exists(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCarRepository) OwnerID(id int64) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

// MockPartRepository mocks the PartRepository interface
type MockPartRepository struct {
	mock.Mock
}

func (m *MockPartRepository) Create(part *models.Part) error {
	args := m.Called(part)
	return args.Error(0)
}

func (m *MockPartRepository) Update(part *models.Part) error {
	args := m.Called(part)
	return args.Error(0)
}

func (m *MockPartRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPartRepository) GetByID(id int64) (*models.Part, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartRepository) List(filter repository.PartFilter, page, pageSize int) ([]models.Part, int64, error) {
	args := m.Called(filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Part), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartRepository) Exists(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartRepository) UpsertByExternalRef(part *models.Part) error {
	args := m.Called(part)
	return args.Error(0)
}

func TestBuildListCreate_FreeTierAtCap(t *testing.T) {
	listRepo := new(MockBuildListRepository)
	listRepo.On("CountByOwner", "user-1").Return(int64(FreeTierBuildListLimit), nil)

	svc := NewBuildListService(listRepo, new(MockCarRepository), new(MockPartRepository), newFakeVoteRepo())

	_, err := svc.Create("user-1", models.TierFree, &dto.CreateBuildListDTO{CarID: 1, Title: "Track build"})
	assert.ErrorIs(t, err, apperror.ErrUpgradeRequired)
	listRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestBuildListCreate_FreeTierUnderCap(t *testing.T) {
	listRepo := new(MockBuildListRepository)
	carRepo := new(MockCarRepository)

	listRepo.On("CountByOwner", "user-1").Return(int64(FreeTierBuildListLimit-1), nil)
	carRepo.On("Exists", int64(1)).Return(true, nil)
	listRepo.On("Create", mock.AnythingOfType("*models.BuildList")).Return(nil)
	listRepo.On("GetByID", int64(1)).Return(&models.BuildList{
		ID: 1, OwnerID: "user-1", CarID: 1, Title: "Track build",
	}, nil)

	svc := NewBuildListService(listRepo, carRepo, new(MockPartRepository), newFakeVoteRepo())

	list, err := svc.Create("user-1", models.TierFree, &dto.CreateBuildListDTO{CarID: 1, Title: "Track build"})
	require.NoError(t, err)
	assert.Equal(t, "Track build", list.Title)
}

func TestBuildListCreate_ProTierSkipsCap(t *testing.T) {
	listRepo := new(MockBuildListRepository)
	carRepo := new(MockCarRepository)

	carRepo.On("Exists", int64(1)).Return(true, nil)
	listRepo.On("Create", mock.AnythingOfType("*models.BuildList")).Return(nil)
	listRepo.On("GetByID", int64(1)).Return(&models.BuildList{
		ID: 1, OwnerID: "user-1", CarID: 1, Title: "Endless builds",
	}, nil)

	svc := NewBuildListService(listRepo, carRepo, new(MockPartRepository), newFakeVoteRepo())

	_, err := svc.Create("user-1", models.TierPro, &dto.CreateBuildListDTO{CarID: 1, Title: "Endless builds"})
	require.NoError(t, err)
	listRepo.AssertNotCalled(t, "CountByOwner", mock.Anything)
}

func TestBuildListUpdate_NonOwnerDenied(t *testing.T) {
	listRepo := new(MockBuildListRepository)
	listRepo.On("GetByID", int64(5)).Return(&models.BuildList{ID: 5, OwnerID: "owner-1"}, nil)

	svc := NewBuildListService(listRepo, new(MockCarRepository), new(MockPartRepository), newFakeVoteRepo())

	title := "hijacked"
	_, err := svc.Update("someone-else", models.RoleUser, 5, &dto.UpdateBuildListDTO{Title: &title})
	assert.ErrorIs(t, err, apperror.ErrDenied)
}

func TestBuildListDelete_CascadesVotes(t *testing.T) {
	listRepo := new(MockBuildListRepository)
	voteRepo := newFakeVoteRepo()

	listRepo.On("GetByID", int64(5)).Return(&models.BuildList{ID: 5, OwnerID: "owner-1"}, nil)
	listRepo.On("Delete", int64(5)).Return(nil)

	require.NoError(t, voteRepo.Upsert(&models.Vote{
		EntityKind: models.EntityKindBuildList, EntityID: 5, UserID: "voter-1", Direction: models.VoteDown,
	}))

	svc := NewBuildListService(listRepo, new(MockCarRepository), new(MockPartRepository), voteRepo)

	require.NoError(t, svc.Delete("owner-1", models.RoleUser, 5))
	assert.Empty(t, voteRepo.votes)
}
