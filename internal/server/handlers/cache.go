package handlers

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DASHBOARD_SUMMARY_CACHE_KEY = "dashboard:summary"
	SHIFT_REPORT_CACHE_PREFIX   = "report:shift:"
	CACHE_TTL_SHORT             = 5 * time.Minute
	CACHE_TTL_MEDIUM            = 30 * time.Minute
)

// invalidateReportCaches drops derived-view caches after a payment mutation.
// Redis is optional; handlers run without caching when no client is wired.
func invalidateReportCaches(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}

	_ = rdb.Del(ctx, DASHBOARD_SUMMARY_CACHE_KEY)

	keys, err := rdb.Keys(ctx, SHIFT_REPORT_CACHE_PREFIX+"*").Result()
	if err == nil && len(keys) > 0 {
		_ = rdb.Del(ctx, keys...)
	}
}
