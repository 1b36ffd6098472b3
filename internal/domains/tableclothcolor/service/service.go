package service

import (
	"context"
	"fmt"
	"rentdesk/config"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/tableclothcolor/model"
	"rentdesk/internal/domains/tableclothcolor/model/dto"
	"rentdesk/internal/domains/tableclothcolor/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllColor = "color:gets"
)

type TableclothColor interface {
	Create(ctx context.Context, tenantID string, req dto.CreateColorRequest) (dto.ColorResponse, error)
	GetAll(ctx context.Context, tenantID string) (dto.GetColorsResponse, error)
	Update(ctx context.Context, tenantID string, req dto.UpdateColorRequest, id string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type serviceImpl struct {
	repo  repository.TableclothColor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.TableclothColor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) TableclothColor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, tenantID string, req dto.CreateColorRequest) (res dto.ColorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".color.Create")
	defer scope.Finish(&err)

	color := req.ToModel(tenantID)

	if err = s.repo.Insert(ctx, color); err != nil {
		log.Error().Err(err).Msg("failed to create tablecloth color")

		return res, fmt.Errorf("failed to create tablecloth color: %w", err)
	}

	res.FromModel(color)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllColor, tenantID))
	}()

	return res, nil
}

// GetAll lists every color of the tenant ordered by name.
func (s *serviceImpl) GetAll(ctx context.Context, tenantID string) (res dto.GetColorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".color.GetAll")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKey(cacheGetAllColor, tenantID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tablecloth colors")

		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldName,
		SortDir: gDto.SortDirAsc,
	}

	colors, err := s.repo.GetAll(ctx, params, shared.FilterByTenant(tenantID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tablecloth colors")

		return res, fmt.Errorf("failed to get tablecloth colors: %w", err)
	}

	res.FromModels(colors)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tablecloth colors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, tenantID string, req dto.UpdateColorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".color.Update")
	defer scope.Finish(&err)

	if req == (dto.UpdateColorRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	req.HexColor = strings.ToUpper(req.HexColor)
	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tablecloth color exists")

		return fmt.Errorf("failed to check if tablecloth color exists: %w", err)
	}

	if !exist {
		return failure.NotFound("tablecloth color not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, tenantID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update tablecloth color")

		return fmt.Errorf("failed to update tablecloth color: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), tenantID)

	return nil
}

// Delete removes the color. Rentals referencing it keep existing without a color.
func (s *serviceImpl) Delete(ctx context.Context, tenantID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".color.Delete")
	defer scope.Finish(&err)

	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tablecloth color exists")

		return fmt.Errorf("failed to check if tablecloth color exists: %w", err)
	}

	if !exist {
		return failure.NotFound("tablecloth color not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete tablecloth color")

		return fmt.Errorf("failed to delete tablecloth color: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), tenantID)

	return nil
}

// invalidate drops the color list and every rental view that embeds color names.
func (s *serviceImpl) invalidate(ctx context.Context, tenantID string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetAllColor, tenantID))
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(constant.CachePrefixRental, tenantID))
}
