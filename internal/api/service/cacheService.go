package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"

	"github.com/redis/go-redis/v9"
)

// CacheService keeps hot vote summaries in redis. Writes invalidate, reads
// fall back to the database on miss; a failed cache call is logged and
// treated as a miss rather than surfaced.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCacheService(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CacheService {
	return &CacheService{client: client, ttl: ttl, logger: logger}
}

func summaryKey(kind models.EntityKind, entityID int64) string {
	return fmt.Sprintf("votes:%s:%d", kind, entityID)
}

func (s *CacheService) GetVoteSummary(ctx context.Context, kind models.EntityKind, entityID int64) (*dto.VoteSummaryResponse, bool) {
	raw, err := s.client.Get(ctx, summaryKey(kind, entityID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache: get vote summary failed", "error", err)
		}
		return nil, false
	}

	var summary dto.VoteSummaryResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("cache: decode vote summary failed", "error", err)
		return nil, false
	}
	return &summary, true
}

func (s *CacheService) SetVoteSummary(ctx context.Context, kind models.EntityKind, entityID int64, summary *dto.VoteSummaryResponse) {
	raw, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("cache: encode vote summary failed", "error", err)
		return
	}
	if err := s.client.Set(ctx, summaryKey(kind, entityID), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("cache: set vote summary failed", "error", err)
	}
}

func (s *CacheService) InvalidateVoteSummary(ctx context.Context, kind models.EntityKind, entityID int64) {
	if err := s.client.Del(ctx, summaryKey(kind, entityID)).Err(); err != nil {
		s.logger.Warn("cache: invalidate vote summary failed", "error", err)
	}
}
