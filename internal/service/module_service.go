package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"finlearn/internal/cache"
	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/logger"
	"finlearn/internal/seed"
	"finlearn/internal/util"

	"go.uber.org/zap"
)

// ModuleService defines the interface for catalog reads, seeding and
// AI-backed module generation.
type ModuleService interface {
	GetAllModules(ctx context.Context) ([]dto.ModuleResponse, error)
	GetModuleStatus(ctx context.Context) (*dto.ModuleStatusResponse, error)
	SeedPremadeModules(ctx context.Context) (*dto.SeedModulesResponse, error)
	GenerateModule(ctx context.Context, topic, difficulty, estimatedTime string) (*dto.ModuleResponse, error)
}

type moduleServiceImpl struct {
	moduleRepo domain.ModuleRepository
	generator  domain.ModuleGenerationService
	cache      domain.Cache
	catalogTTL time.Duration
}

// NewModuleService creates a new instance of ModuleService.
func NewModuleService(
	moduleRepo domain.ModuleRepository,
	generator domain.ModuleGenerationService,
	cacheClient domain.Cache,
	catalogTTL time.Duration,
) ModuleService {
	return &moduleServiceImpl{
		moduleRepo: moduleRepo,
		generator:  generator,
		cache:      cacheClient,
		catalogTTL: catalogTTL,
	}
}

func catalogCacheKey() string {
	return cache.GenerateCacheKey("module", "catalog", "all")
}

func statusCacheKey() string {
	return cache.GenerateCacheKey("module", "status", "summary")
}

// GetAllModules returns the catalog in creation order, served from Redis when
// a fresh copy is cached. A cache failure degrades to a direct read.
func (s *moduleServiceImpl) GetAllModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	appLogger := logger.Get()
	key := catalogCacheKey()

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var responses []dto.ModuleResponse
		if err := json.Unmarshal([]byte(cached), &responses); err == nil {
			return responses, nil
		}
		appLogger.Warn("Malformed catalog cache entry, falling back to store", zap.String("key", key))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Catalog cache read failed", zap.Error(err))
	}

	modules, err := s.moduleRepo.GetAllModules(ctx)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to load module catalog", err)
	}
	responses := dto.NewModuleResponses(modules)

	if payload, err := json.Marshal(responses); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.catalogTTL); err != nil {
			appLogger.Warn("Failed to cache module catalog", zap.Error(err))
		}
	}
	return responses, nil
}

// GetModuleStatus reports whether the catalog has been populated.
func (s *moduleServiceImpl) GetModuleStatus(ctx context.Context) (*dto.ModuleStatusResponse, error) {
	appLogger := logger.Get()
	key := statusCacheKey()

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var status dto.ModuleStatusResponse
		if err := json.Unmarshal([]byte(cached), &status); err == nil {
			return &status, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Status cache read failed", zap.Error(err))
	}

	count, err := s.moduleRepo.CountModules(ctx)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to count modules", err)
	}

	status := &dto.ModuleStatusResponse{
		HasModules:      count > 0,
		Count:           count,
		NeedsGeneration: count == 0,
	}
	if payload, err := json.Marshal(status); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.catalogTTL); err != nil {
			appLogger.Warn("Failed to cache module status", zap.Error(err))
		}
	}
	return status, nil
}

func (s *moduleServiceImpl) invalidateCatalogCache(ctx context.Context) {
	appLogger := logger.Get()
	for _, key := range []string{catalogCacheKey(), statusCacheKey()} {
		if err := s.cache.Delete(ctx, key); err != nil {
			appLogger.Warn("Failed to invalidate catalog cache", zap.String("key", key), zap.Error(err))
		}
	}
}

// SeedPremadeModules upserts the built-in catalog keyed by title, so repeated
// seeding refreshes content instead of duplicating rows or silently skipping.
func (s *moduleServiceImpl) SeedPremadeModules(ctx context.Context) (*dto.SeedModulesResponse, error) {
	appLogger := logger.Get()
	result := &dto.SeedModulesResponse{}

	for _, module := range seed.PremadeModules() {
		existing, err := s.moduleRepo.GetModuleByTitle(ctx, module.Title)
		if err != nil {
			return nil, domain.NewUpstreamError("failed to look up module by title", err)
		}
		if existing == nil {
			module.ID = util.NewULID()
			if err := s.moduleRepo.SaveModule(ctx, module); err != nil {
				return nil, domain.NewUpstreamError("failed to save seeded module", err)
			}
			result.Created++
		} else {
			module.ID = existing.ID
			module.CreatedAt = existing.CreatedAt
			if err := s.moduleRepo.UpdateModule(ctx, module); err != nil {
				return nil, domain.NewUpstreamError("failed to refresh seeded module", err)
			}
			result.Updated++
		}
		result.Total++
	}

	s.invalidateCatalogCache(ctx)
	appLogger.Info("Premade modules seeded",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated))
	return result, nil
}

// GenerateModule asks the LLM for a module on the topic, validates the result
// and persists it.
func (s *moduleServiceImpl) GenerateModule(ctx context.Context, topic, difficulty, estimatedTime string) (*dto.ModuleResponse, error) {
	appLogger := logger.Get()

	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}
	if !domain.IsValidDifficulty(difficulty) {
		return nil, domain.NewInvalidInputError("difficulty must be beginner, intermediate or advanced")
	}
	if estimatedTime == "" {
		estimatedTime = "30 minutes"
	}

	generated, err := s.generator.GenerateModule(ctx, topic, difficulty, estimatedTime)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	module := &domain.LearningModule{
		ID:          util.NewULID(),
		Title:       generated.Title,
		Description: generated.Description,
		Topic:       topic,
		Difficulty:  difficulty,
		Content: domain.ModuleContent{
			Objectives:        generated.Objectives,
			Sections:          generated.Sections,
			KeyTakeaways:      generated.KeyTakeaways,
			PracticeQuestions: generated.PracticeQs,
			Resources:         generated.Resources,
		},
		EstimatedTime: estimatedTime,
	}
	if generated.EstimatedTime != "" {
		module.EstimatedTime = generated.EstimatedTime
	}
	if err := module.Validate(); err != nil {
		return nil, err
	}
	if err := s.moduleRepo.SaveModule(ctx, module); err != nil {
		return nil, domain.NewUpstreamError("failed to save generated module", err)
	}

	s.invalidateCatalogCache(ctx)
	appLogger.Info("Learning module generated",
		zap.String("moduleID", module.ID),
		zap.String("topic", topic),
		zap.String("difficulty", difficulty))

	resp := dto.NewModuleResponse(module)
	return &resp, nil
}
