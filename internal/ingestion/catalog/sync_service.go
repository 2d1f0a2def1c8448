package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"gorm.io/gorm"
)

const (
	defaultPageSize    = 100
	defaultWorkerCount = 10
)

// SyncService pulls the upstream parts catalog into the local store. Runs
// are idempotent: parts key on their external reference, so a re-run
// updates rows instead of duplicating them.
type SyncService struct {
	client       *Client
	db           *gorm.DB
	partRepo     repository.PartRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger

	pageSize    int
	workerCount int
}

type SyncConfig struct {
	BaseURL     string
	APIKey      string
	PageSize    int
	WorkerCount int
}

func NewSyncService(
	cfg SyncConfig,
	db *gorm.DB,
	partRepo repository.PartRepository,
	categoryRepo repository.CategoryRepository,
	logger *slog.Logger,
) *SyncService {
	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	workerCount := cfg.WorkerCount
	if workerCount == 0 {
		workerCount = defaultWorkerCount
	}

	return &SyncService{
		client:       NewClient(cfg.BaseURL, cfg.APIKey, logger),
		db:           db,
		partRepo:     partRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		pageSize:     pageSize,
		workerCount:  workerCount,
	}
}

// SyncState records where the last run got to, keyed by sync type.
type SyncState struct {
	ID            int    `gorm:"primaryKey"`
	SyncType      string `gorm:"unique;not null"`
	LastRunAt     *time.Time
	LastSuccessAt *time.Time
	LastCursor    string
	Status        string
	ErrorMessage  string
	UpdatedAt     time.Time
}

func (SyncState) TableName() string {
	return "sync_state"
}

// Run walks the catalog page by page, spreading storage across the worker
// pool. The cursor is the updated_since watermark of the previous
// successful run.
func (s *SyncService) Run(ctx context.Context) error {
	const syncType = "parts_catalog"

	startedAt := time.Now()
	state, err := s.getState(syncType)
	if err != nil {
		return err
	}

	s.markRunning(syncType)

	pool := NewWorkerPool(ctx, s.workerCount, s.logger)
	pool.Start()

	var synced, failed atomic.Int64
	offset := 0
	for {
		params := BuildPartQueryParams(s.pageSize, offset, state.LastCursor)
		page, err := s.client.ListParts(ctx, params)
		if err != nil {
			pool.Shutdown()
			s.markFailed(syncType, err)
			return fmt.Errorf("catalog page at offset %d: %w", offset, err)
		}

		for _, entry := range page.Data {
			entry := entry
			pool.Submit(func(taskCtx context.Context) error {
				if err := s.storePart(taskCtx, entry); err != nil {
					failed.Add(1)
					return err
				}
				synced.Add(1)
				return nil
			})
		}

		offset += len(page.Data)
		if offset >= page.Total || len(page.Data) == 0 {
			break
		}
	}

	pool.Wait()

	s.markCompleted(syncType, startedAt.UTC().Format(time.RFC3339))
	s.logger.Info("catalog sync finished",
		"synced", synced.Load(), "failed", failed.Load(), "elapsed", time.Since(startedAt))
	return nil
}

// storePart normalizes one catalog entry and upserts it with its category.
func (s *SyncService) storePart(ctx context.Context, data PartData) error {
	extracted, err := ExtractPartMetadata(data)
	if err != nil {
		return err
	}

	category, err := s.ensureCategory(extracted.CategorySlug, extracted.CategoryName)
	if err != nil {
		return fmt.Errorf("category %q: %w", extracted.CategorySlug, err)
	}

	part := &models.Part{
		CategoryID:   category.ID,
		Manufacturer: extracted.Manufacturer,
		Name:         extracted.Name,
		Spec:         extracted.Spec,
		ExternalRef:  &extracted.ExternalRef,
	}
	if err := s.partRepo.UpsertByExternalRef(part); err != nil {
		return fmt.Errorf("upsert part %q: %w", extracted.ExternalRef, err)
	}

	s.logger.Debug("synced part", "external_ref", extracted.ExternalRef, "name", extracted.Name)
	return nil
}

func (s *SyncService) ensureCategory(slug, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(created); err != nil {
		// lost a create race; the row is there now
		if existing, getErr := s.categoryRepo.GetBySlug(slug); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

func (s *SyncService) getState(syncType string) (*SyncState, error) {
	var state SyncState
	err := s.db.Where("sync_type = ?", syncType).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = SyncState{SyncType: syncType}
		if err := s.db.Create(&state).Error; err != nil {
			return nil, err
		}
		return &state, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SyncService) markRunning(syncType string) {
	now := time.Now()
	s.db.Model(&SyncState{}).Where("sync_type = ?", syncType).Updates(map[string]any{
		"last_run_at": now,
		"status":      "running",
	})
}

func (s *SyncService) markCompleted(syncType, cursor string) {
	now := time.Now()
	s.db.Model(&SyncState{}).Where("sync_type = ?", syncType).Updates(map[string]any{
		"last_success_at": now,
		"last_cursor":     cursor,
		"status":          "completed",
		"error_message":   "",
	})
}

func (s *SyncService) markFailed(syncType string, runErr error) {
	s.db.Model(&SyncState{}).Where("sync_type = ?", syncType).Updates(map[string]any{
		"status":        "failed",
		"error_message": runErr.Error(),
	})
}
