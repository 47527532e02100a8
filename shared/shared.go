package shared

import (
	"context"
	"rental/shared/cache"
	"rental/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a cache namespace and its parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	keys := append([]string{prefix}, parts...)

	return strings.Join(keys, cacheKeySeparator)
}

// InvalidateCaches drops every key under prefix. Failures are logged only, a
// stale projection expires with its TTL.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
