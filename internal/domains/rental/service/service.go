package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Rental=MockRentalService

import (
	"context"
	"fmt"
	"rentdesk/config"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	customerModel "rentdesk/internal/domains/customer/model"
	customerRepo "rentdesk/internal/domains/customer/repository"
	customerService "rentdesk/internal/domains/customer/service"
	"rentdesk/internal/domains/rental/listing"
	"rentdesk/internal/domains/rental/model"
	"rentdesk/internal/domains/rental/model/dto"
	"rentdesk/internal/domains/rental/repository"
	colorModel "rentdesk/internal/domains/tableclothcolor/model"
	colorRepo "rentdesk/internal/domains/tableclothcolor/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

const (
	cacheGetRental      = "get"
	cacheSnapshotRental = "snapshot"
)

type Rental interface {
	Create(ctx context.Context, tenantID string, req dto.CreateRentalRequest) (dto.RentalResponse, error)
	List(ctx context.Context, tenantID string, opts listing.Options, params gDto.QueryParams) (dto.GetRentalsResponse, error)
	Get(ctx context.Context, tenantID, id string) (dto.RentalResponse, error)
	Update(ctx context.Context, tenantID string, req dto.UpdateRentalRequest, id string) error
	MarkReturned(ctx context.Context, tenantID, id string) error
	MarkActive(ctx context.Context, tenantID, id string) error
	Delete(ctx context.Context, tenantID, id string) error
	Snapshot(ctx context.Context, tenantID string) ([]model.RentalDetail, error)
}

type serviceImpl struct {
	repo         repository.Rental
	customerRepo customerRepo.Customer
	colorRepo    colorRepo.TableclothColor
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	locale       language.Tag
}

func New(
	repo repository.Rental,
	customerRepo customerRepo.Customer,
	colorRepo colorRepo.TableclothColor,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Rental {
	return &serviceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		colorRepo:    colorRepo,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		locale:       parseLocale(cfg.App.Locale),
	}
}

func parseLocale(value string) language.Tag {
	if value == "" {
		return listing.DefaultLocale
	}

	tag, err := language.Parse(value)
	if err != nil {
		log.Warn().Err(err).Str("locale", value).Msg("invalid locale, falling back to default")

		return listing.DefaultLocale
	}

	return tag
}

// Create stores an active rental. An inline customer is matched by email within
// the tenant, or created in the same transaction as the rental.
func (s *serviceImpl) Create(ctx context.Context, tenantID string, req dto.CreateRentalRequest) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Create")
	defer scope.Finish(&err)

	color, err := s.ownedColor(ctx, tenantID, req.TableclothColorID)
	if err != nil {
		return res, err
	}

	customer, isNew, err := s.resolveCustomer(ctx, tenantID, req)
	if err != nil {
		return res, err
	}

	rental := req.ToModel(tenantID, customer.ID)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if isNew {
			if err := s.customerRepo.InsertTx(ctx, tx, customer); err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
		}

		return s.repo.InsertTx(ctx, tx, rental) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create rental")

		return res, fmt.Errorf("failed to create rental: %w", err)
	}

	detail := model.RentalDetail{
		Rental:        rental,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
	}

	if color.ID != constant.Empty {
		detail.ColorName = &color.Name
		detail.ColorHex = &color.HexColor
	}

	res.FromModel(detail, timezone.Now())

	go s.invalidate(context.WithoutCancel(ctx), tenantID)

	return res, nil
}

func (s *serviceImpl) resolveCustomer(ctx context.Context, tenantID string, req dto.CreateRentalRequest) (customerModel.Customer, bool, error) {
	if req.CustomerID != constant.Empty {
		customer, err := s.customerRepo.Get(ctx, shared.FilterByIDAndTenant(req.CustomerID, customerModel.FieldID, tenantID, customerModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get customer")

			return customer, false, fmt.Errorf("failed to get customer: %w", err)
		}

		if customer.ID == constant.Empty {
			return customer, false, failure.NotFound("customer not found") // nolint:wrapcheck
		}

		return customer, false, nil
	}

	inline := req.Customer.ToModel(tenantID)
	if inline.Email == nil {
		return inline, true, nil
	}

	filter := shared.FilterByTenant(tenantID, customerModel.TableName).
		With(gDto.Eq(customerModel.TableName, customerModel.FieldEmail, *inline.Email))

	existing, err := s.customerRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find customer by email")

		return existing, false, fmt.Errorf("failed to find customer by email: %w", err)
	}

	if existing.ID != constant.Empty {
		return existing, false, nil
	}

	return inline, true, nil
}

// ownedColor loads the color referenced by a rental, rejecting colors of other tenants.
func (s *serviceImpl) ownedColor(ctx context.Context, tenantID, colorID string) (colorModel.TableclothColor, error) {
	if colorID == constant.Empty {
		return colorModel.TableclothColor{}, nil
	}

	color, err := s.colorRepo.Get(ctx, shared.FilterByIDAndTenant(colorID, colorModel.FieldID, tenantID, colorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tablecloth color")

		return color, fmt.Errorf("failed to get tablecloth color: %w", err)
	}

	if color.ID == constant.Empty {
		return color, failure.Validation(model.FieldTableclothColorID, "tablecloth color not found") // nolint:wrapcheck
	}

	return color, nil
}

// List filters, searches and sorts the tenant's rentals, then pages them when params.Limit is set.
func (s *serviceImpl) List(ctx context.Context, tenantID string, opts listing.Options, params gDto.QueryParams) (res dto.GetRentalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.List")
	defer scope.Finish(&err)

	rentals, err := s.Snapshot(ctx, tenantID)
	if err != nil {
		return res, err
	}

	opts.Locale = s.locale

	res.FromModels(listing.Apply(rentals, opts), params.Page, params.Limit, timezone.Now())

	return res, nil
}

// Snapshot returns every rental detail of the tenant, newest first.
func (s *serviceImpl) Snapshot(ctx context.Context, tenantID string) (res []model.RentalDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Snapshot")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKey(constant.CachePrefixRental, tenantID, cacheSnapshotRental, model.RentalDetailVersion)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rentals")

		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	res, err = s.repo.GetDetails(ctx, params, shared.FilterByTenant(tenantID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rentals")

		return res, fmt.Errorf("failed to get rentals: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rentals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, tenantID, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Get")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKey(constant.CachePrefixRental, tenantID, cacheGetRental, id)

	var detail model.RentalDetail

	err = s.cache.Get(ctx, cacheKey, &detail)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rental")
		res.FromModel(detail, timezone.Now())

		return res, nil
	}

	detail, err = s.repo.GetDetail(ctx, shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return res, fmt.Errorf("failed to get rental: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("rental not found") // nolint:wrapcheck
	}

	res.FromModel(detail, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, detail, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental to cache")
		}
	}()

	return res, nil
}

// Update edits a rental, keeping quantity and item_type consistent with the item quantities.
func (s *serviceImpl) Update(ctx context.Context, tenantID string, req dto.UpdateRentalRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Update")
	defer scope.Finish(&err)

	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return fmt.Errorf("failed to get rental: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("rental not found") // nolint:wrapcheck
	}

	fields, err := req.Fields(current)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if len(fields) == 0 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.TableclothColorID != nil {
		if _, err = s.ownedColor(ctx, tenantID, *req.TableclothColorID); err != nil {
			return err
		}
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = tenantID

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update rental")

		return fmt.Errorf("failed to update rental: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), tenantID)

	return nil
}

// MarkReturned moves an active rental to inactive. Returning a returned rental is a no-op.
func (s *serviceImpl) MarkReturned(ctx context.Context, tenantID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.MarkReturned")
	defer scope.Finish(&err)

	return s.setReturned(ctx, tenantID, id, true)
}

// MarkActive moves an inactive rental back to active. Reactivating an active rental is a no-op.
func (s *serviceImpl) MarkActive(ctx context.Context, tenantID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.MarkActive")
	defer scope.Finish(&err)

	return s.setReturned(ctx, tenantID, id, false)
}

func (s *serviceImpl) setReturned(ctx context.Context, tenantID, id string, returned bool) error {
	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	rental, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldReturned)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == constant.Empty {
		return failure.NotFound("rental not found") // nolint:wrapcheck
	}

	if rental.Returned == returned {
		return nil
	}

	fields := map[string]any{
		model.FieldReturned:      returned,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: tenantID,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Bool("returned", returned).Msg("failed to update rental status")

		return fmt.Errorf("failed to update rental status: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), tenantID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, tenantID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Delete")
	defer scope.Finish(&err)

	filter := shared.FilterByIDAndTenant(id, model.FieldID, tenantID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rental exists")

		return fmt.Errorf("failed to check if rental exists: %w", err)
	}

	if !exist {
		return failure.NotFound("rental not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete rental")

		return fmt.Errorf("failed to delete rental: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), tenantID)

	return nil
}

// invalidate drops every rental-derived cache of the tenant, reports included.
func (s *serviceImpl) invalidate(ctx context.Context, tenantID string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(constant.CachePrefixRental, tenantID))
	customerService.InvalidateListCaches(ctx, s.cache, tenantID)
}
