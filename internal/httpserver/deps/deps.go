package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharemark/sharemark/internal/index"
	"github.com/sharemark/sharemark/internal/intercept"
	"github.com/sharemark/sharemark/internal/logger"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedCIDRS  []string               // IPs allowed to access infra endpoints
	TrustProxy    bool                   // true if running behind a trusted reverse proxy
	RedisClient   *redis.Client          // Redis client connection
	MemoryIndex   *index.Memory          // In-memory bookmark index (nil in redis-backed mode)
	BookmarkMode  string                 // "file" or "redis"
	Stats         func() intercept.Stats // Interceptor counters snapshot
	ReloadTrigger chan struct{}          // Channel to trigger manual bookmark reload (nil in redis-backed mode)
}
