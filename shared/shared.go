package shared

import (
	"context"
	"fmt"
	"hash/fnv"
	"maps"
	"math"
	"reflect"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	"rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.And(dto.Eq(table, fieldID, id))
}

// FilterByTenant scopes a query to the rows owned by tenantID.
func FilterByTenant(tenantID, table string) dto.FilterGroup {
	return dto.And(dto.Eq(table, constant.FieldTenantID, tenantID))
}

// FilterByIDAndTenant matches a single row by id, only if tenantID owns it.
func FilterByIDAndTenant(id, fieldID, tenantID, table string) dto.FilterGroup {
	return FilterByTenant(tenantID, table).With(dto.Eq(table, fieldID, id))
}

// GetTenantID returns the authenticated tenant set by the auth middleware.
func GetTenantID(ctx context.Context) (string, error) {
	tenantID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || tenantID == "" {
		return "", failure.Unauthorized("unauthorized")
	}

	return tenantID, nil
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a deterministic key from pagination and filter values.
func BuildCacheKeyWithQuery(prefix, tenantID string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := slices.Sorted(maps.Keys(args))

	hash := fnv.New64a()
	_, _ = hash.Write([]byte(where))

	for _, key := range keys {
		_, _ = fmt.Fprintf(hash, "&%s=%v", key, args[key])
	}

	return BuildCacheKey(prefix, tenantID,
		fmt.Sprintf("p%d", params.Page),
		fmt.Sprintf("l%d", params.Limit),
		params.SortBy,
		params.SortDir,
		fmt.Sprintf("%x", hash.Sum64()),
	)
}

// InvalidateCaches removes every key under prefix. Failures are logged, never returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
