package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sharemark/sharemark/internal/config"
	"github.com/sharemark/sharemark/internal/httpserver"
	"github.com/sharemark/sharemark/internal/httpserver/deps"
	"github.com/sharemark/sharemark/internal/identity"
	"github.com/sharemark/sharemark/internal/index"
	"github.com/sharemark/sharemark/internal/intercept"
	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/redisconn"
	"github.com/sharemark/sharemark/internal/scheduler"
	"github.com/sharemark/sharemark/internal/store"
	"github.com/sharemark/sharemark/internal/store/redisstore"
	"github.com/sharemark/sharemark/internal/version"
	"github.com/sharemark/sharemark/internal/xmpp"
)

// App wires the interception engine, its collaborators, and the
// diagnostics server. The host transport drives the observer chain; this
// process only owns the chain, the bookmark source, and diagnostics.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.Memory
	reloader    *scheduler.BookmarkReloader
	interceptor *intercept.Interceptor
	chain       *xmpp.ObserverChain
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redisconn.New(redisconn.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Pick the bookmark source: a YAML file served through the memory
	// index, or records mirrored into Redis by the host server.
	var (
		bookmarks    store.Bookmarks
		memIndex     *index.Memory
		reloader     *scheduler.BookmarkReloader
		trigger      chan struct{}
		bookmarkMode string
	)
	if cfg.BookmarkFile != "" {
		loggerClient.Info("bookmark file configured, serving bookmarks from file",
			logger.String("file", cfg.BookmarkFile))
		memIndex = index.NewMemory()
		trigger = make(chan struct{}, 1)
		reloader = scheduler.NewBookmarkReloader(
			cfg.BookmarkFile,
			memIndex,
			loggerClient,
			cfg.ReloadInterval,
			trigger,
		)
		bookmarks = memIndex
		bookmarkMode = "file"
	} else {
		loggerClient.Info("no bookmark file configured, serving bookmarks from redis")
		bookmarks = redisstore.New(redisClient)
		bookmarkMode = "redis"
	}

	resolver := identity.NewRedisResolver(redisClient, loggerClient)

	// The interceptor carries no sink here: the host transport embedding
	// the chain routes replies from Result.Reply itself.
	interceptor := intercept.New(bookmarks, resolver, nil, loggerClient)
	chain := xmpp.NewObserverChain()
	interceptor.Start(chain)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RedisClient:   redisClient,
		MemoryIndex:   memIndex,
		BookmarkMode:  bookmarkMode,
		Stats:         interceptor.Stats,
		ReloadTrigger: trigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		interceptor: interceptor,
		chain:       chain,
	}
}

// Chain exposes the observer chain for the host transport to dispatch
// stanzas through.
func (a *App) Chain() *xmpp.ObserverChain {
	return a.chain
}

// Interceptor exposes the engine, mainly for stats.
func (a *App) Interceptor() *intercept.Interceptor {
	return a.interceptor
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Sharemark v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Sharemark %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start bookmark reloader: %w", err)
		}
		a.logger.Info("bookmark reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}

	a.interceptor.Stop(a.chain)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Sharemark stopped cleanly")
	return nil
}
