package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront-api/internal/repository"
)

// statsCacheKey is where the summary is cached in Redis
const statsCacheKey = "stats:summary"

// statsCacheTTL bounds how stale the dashboard numbers may get
const statsCacheTTL = 30 * time.Second

// StatsSummary is the dashboard aggregate
type StatsSummary struct {
	TotalProducts   int64           `json:"totalProducts"`
	TotalCategories int64           `json:"totalCategories"`
	TotalUsers      int64           `json:"totalUsers"`
	LatestProducts  []LatestProduct `json:"latestProducts"`
}

// LatestProduct is the trimmed product view shown on the dashboard
type LatestProduct struct {
	ID        uint      `json:"_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatsService computes dashboard aggregates, cached briefly in Redis
type StatsService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	rdb          *redis.Client
}

// NewStatsService creates a new StatsService; rdb may be nil to disable
// caching
func NewStatsService(
	productRepo *repository.ProductRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *StatsService {
	return &StatsService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		rdb:          rdb,
	}
}

// Summary returns the aggregate counts and the five newest products. Redis
// failures fall through to the database.
func (s *StatsService) Summary(ctx context.Context) (*StatsSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var summary StatsSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.rdb.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}

	return summary, nil
}

func (s *StatsService) compute() (*StatsSummary, error) {
	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.categoryRepo.Count()
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	latest, err := s.productRepo.Latest(5)
	if err != nil {
		return nil, err
	}

	latestView := make([]LatestProduct, len(latest))
	for i, p := range latest {
		latestView[i] = LatestProduct{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			CreatedAt: p.CreatedAt,
		}
	}

	return &StatsSummary{
		TotalProducts:   totalProducts,
		TotalCategories: totalCategories,
		TotalUsers:      totalUsers,
		LatestProducts:  latestView,
	}, nil
}
