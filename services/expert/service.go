package expert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	expertRepo "expertbook/database/repository/expert"
	"expertbook/models"
)

const listCachePrefix = "experts:list:"

// DefaultExpertService implements Service with a read-through redis cache on
// the listing page. The cache is never load-bearing: any redis failure falls
// through to the store.
type DefaultExpertService struct {
	Repo     expertRepo.Repository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// List returns one catalogue page. Page defaults to 1 and limit to 10; a
// page past the end yields an empty expert list with totalPages intact.
func (s *DefaultExpertService) List(ctx context.Context, p ListParams) (*ListResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}

	key := fmt.Sprintf("%s%s:%s:%d:%d", listCachePrefix, p.Category, p.Search, p.Page, p.Limit)
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached ListResult
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	experts, total, err := s.Repo.List(ctx, expertRepo.ListQuery{
		Category: p.Category,
		Search:   p.Search,
		Page:     p.Page,
		Limit:    p.Limit,
	})
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Experts:     experts,
		TotalPages:  (total + p.Limit - 1) / p.Limit,
		CurrentPage: p.Page,
	}

	if s.Cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Cache.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("expert: failed to cache listing page", zap.Error(err))
			}
		}
	}
	return result, nil
}

// GetByID returns the full expert document including slots.
func (s *DefaultExpertService) GetByID(ctx context.Context, id string) (*models.Expert, error) {
	return s.Repo.GetByID(ctx, id)
}

// InvalidateListingCache scans and deletes cached listing pages. Failures
// are logged and ignored: the TTL bounds staleness regardless.
func (s *DefaultExpertService) InvalidateListingCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	iter := s.Cache.Scan(ctx, 0, listCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.Logger.Warn("expert: failed to invalidate listing cache key",
				zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.Logger.Warn("expert: listing cache scan failed", zap.Error(err))
	}
}
