package shared

import (
	"context"
	"crypto/md5" //nolint:gosec // fingerprint only, not security sensitive
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"ruang/shared/cache"
	"ruang/shared/constant"
	"ruang/shared/dto"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins key parts with the cache separator.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a cache key from a prefix plus a fingerprint
// of the query params and filters, so each distinct listing gets its own entry.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to fingerprint cache key, falling back to prefix")

		return prefix
	}

	return fmt.Sprintf("%s%s%x", prefix, cacheKeySeparator, md5.Sum(payload)) //nolint:gosec
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
