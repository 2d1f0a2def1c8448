package service

import (
	"errors"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

// EntityLookup supplies the existence and ownership checks the vote and
// moderation engines need for one entity kind. Registering a lookup per
// kind keeps a single engine serving cars, build lists and parts.
type EntityLookup interface {
	Exists(id int64) (bool, error)
	// OwnerID returns the owning user and whether the kind has owners at
	// all. Global parts have none, so self-vote/self-report checks pass
	// vacuously for them.
	OwnerID(id int64) (string, bool, error)
}

type LookupRegistry map[models.EntityKind]EntityLookup

func NewLookupRegistry(
	carRepo repository.CarRepository,
	buildListRepo repository.BuildListRepository,
	partRepo repository.PartRepository,
) LookupRegistry {
	return LookupRegistry{
		models.EntityKindCar:       carLookup{repo: carRepo},
		models.EntityKindBuildList: buildListLookup{repo: buildListRepo},
		models.EntityKindPart:      partLookup{repo: partRepo},
	}
}

func (reg LookupRegistry) ForKind(kind models.EntityKind) (EntityLookup, error) {
	lookup, ok := reg[kind]
	if !ok {
		return nil, apperror.ErrInvalidArgument
	}
	return lookup, nil
}

type carLookup struct {
	repo repository.CarRepository
}

func (l carLookup) Exists(id int64) (bool, error) {
	return l.repo.Exists(id)
}

func (l carLookup) OwnerID(id int64) (string, bool, error) {
	owner, err := l.repo.OwnerID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", true, apperror.ErrNotFound
		}
		return "", true, err
	}
	return owner, true, nil
}

type buildListLookup struct {
	repo repository.BuildListRepository
}

func (l buildListLookup) Exists(id int64) (bool, error) {
	return l.repo.Exists(id)
}

func (l buildListLookup) OwnerID(id int64) (string, bool, error) {
	owner, err := l.repo.OwnerID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", true, apperror.ErrNotFound
		}
		return "", true, err
	}
	return owner, true, nil
}

type partLookup struct {
	repo repository.PartRepository
}

func (l partLookup) Exists(id int64) (bool, error) {
	return l.repo.Exists(id)
}

// Parts belong to the global catalog, nobody owns them.
func (l partLookup) OwnerID(id int64) (string, bool, error) {
	return "", false, nil
}
