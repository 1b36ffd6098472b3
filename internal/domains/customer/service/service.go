package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Customer=MockCustomerService

import (
	"context"
	"fmt"
	"rentdesk/config"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/customer/model"
	"rentdesk/internal/domains/customer/model/dto"
	"rentdesk/internal/domains/customer/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCustomer    = "customer:get"
	cacheGetAllCustomer = "customer:gets"
	cacheCountCustomer  = "customer:count"
)

type Customer interface {
	Create(ctx context.Context, tenantID string, req dto.CreateCustomerRequest) (dto.CustomerResponse, error)
	GetAll(ctx context.Context, tenantID string, params gDto.QueryParams, search string) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, tenantID, id string) (dto.CustomerResponse, error)
	Update(ctx context.Context, tenantID string, req dto.UpdateCustomerRequest, id string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type serviceImpl struct {
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, tenantID string, req dto.CreateCustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Create")
	defer scope.Finish(&err)

	customer := req.ToModel(tenantID)

	if err = s.repo.Insert(ctx, customer); err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return res, fmt.Errorf("failed to create customer: %w", err)
	}

	res.FromModel(customer)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c, tenantID)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, tenantID string, params gDto.QueryParams, search string) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.GetAll")
	defer scope.Finish(&err)

	params.Sanitize(dto.SortColumns, model.TableName+"."+model.FieldName, gDto.SortDirAsc)

	filter := shared.FilterByTenant(tenantID, model.TableName)
	if search = strings.TrimSpace(search); search != "" {
		filter.Filters = append(filter.Filters, dto.SearchFilter(search))
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, tenantID, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.count(ctx, tenantID, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	summaries, err := s.repo.GetSummaries(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromSummaries(summaries, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, tenantID string, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.count")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCustomer, tenantID, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, tenantID, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Get")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKey(cacheGetCustomer, tenantID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer")

		return res, nil
	}

	customer, err := s.repo.Get(ctx, shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	res.FromModel(customer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, tenantID string, req dto.UpdateCustomerRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Update")
	defer scope.Finish(&err)

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	fields := req.Fields()
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = tenantID

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update customer")

		return fmt.Errorf("failed to update customer: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCustomer, tenantID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete customer from cache")
		}

		s.invalidateLists(c, tenantID)
		// rentals embed the customer name
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixRental, tenantID))
	}()

	return nil
}

// Delete removes the customer. The database cascades the removal to its rentals.
func (s *serviceImpl) Delete(ctx context.Context, tenantID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Delete")
	defer scope.Finish(&err)

	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete customer")

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCustomer, tenantID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete customer from cache")
		}

		s.invalidateLists(c, tenantID)
		// rentals embed the customer name
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixRental, tenantID))
	}()

	return nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context, tenantID string) {
	InvalidateListCaches(ctx, s.cache, tenantID)
}

// InvalidateListCaches drops the cached customer listings of tenantID. Rental
// writes call it because listings carry rental counts.
func InvalidateListCaches(ctx context.Context, redisCache cache.RedisCache, tenantID string) {
	shared.InvalidateCaches(ctx, redisCache, shared.BuildCacheKey(cacheGetAllCustomer, tenantID))
	shared.InvalidateCaches(ctx, redisCache, shared.BuildCacheKey(cacheCountCustomer, tenantID))
}
