package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Inventory=MockInventoryService

import (
	"context"
	"fmt"
	"rentdesk/config"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/inventory/model"
	"rentdesk/internal/domains/inventory/model/dto"
	"rentdesk/internal/domains/inventory/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetInventory = "inventory:get"
)

type Inventory interface {
	Get(ctx context.Context, tenantID string) (dto.InventoryResponse, error)
	Upsert(ctx context.Context, tenantID string, req dto.UpsertInventoryRequest) (dto.InventoryResponse, error)
}

type serviceImpl struct {
	repo  repository.Inventory
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Inventory, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Inventory {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Get returns the tenant's totals, all zero when none were saved yet.
func (s *serviceImpl) Get(ctx context.Context, tenantID string) (res dto.InventoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Get")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKey(cacheGetInventory, tenantID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inventory")

		return res, nil
	}

	inventory, err := s.repo.Get(ctx, shared.FilterByTenant(tenantID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory")

		return res, fmt.Errorf("failed to get inventory: %w", err)
	}

	res.FromModel(inventory)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inventory to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, tenantID string, req dto.UpsertInventoryRequest) (res dto.InventoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Upsert")
	defer scope.Finish(&err)

	inventory := req.ToModel(tenantID)

	if err = s.repo.Upsert(ctx, inventory); err != nil {
		log.Error().Err(err).Msg("failed to save inventory")

		return res, fmt.Errorf("failed to save inventory: %w", err)
	}

	res.FromModel(inventory)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInventory, tenantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete inventory from cache")
		}
	}()

	return res, nil
}
