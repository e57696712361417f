package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sharemark/sharemark/internal/index"
	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/sources/bookmarkfile"
)

// BookmarkReloader handles periodic reloading of the bookmark file into
// the memory index. The file is the source of truth; every reload replaces
// the served set wholesale.
type BookmarkReloader struct {
	loader        *bookmarkfile.Loader
	mapper        *bookmarkfile.Mapper
	index         *index.Memory
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewBookmarkReloader creates a new bookmark reloader
func NewBookmarkReloader(
	bookmarkFile string,
	idx *index.Memory,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BookmarkReloader {
	return &BookmarkReloader{
		loader:        bookmarkfile.NewLoader(bookmarkFile),
		mapper:        bookmarkfile.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (br *BookmarkReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := br.Reload(ctx); err != nil {
		return fmt.Errorf("initial bookmark reload failed: %w", err)
	}

	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := br.Reload(ctx); err != nil {
					br.logger.Error("failed to reload bookmarks",
						logger.Error(err))
				}
			case <-br.manualTrigger:
				br.logger.Info("manual bookmark reload triggered")
				if err := br.Reload(ctx); err != nil {
					br.logger.Error("failed to reload bookmarks",
						logger.Error(err))
				}
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (br *BookmarkReloader) Stop() {
	close(br.stopCh)
}

// Reload loads the bookmark file and replaces the index contents
func (br *BookmarkReloader) Reload(ctx context.Context) error {
	config, err := br.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	bookmarks, err := br.mapper.Map(config)
	if err != nil {
		return fmt.Errorf("failed to map bookmarks: %w", err)
	}

	br.index.Update(bookmarks)
	br.logger.Info("bookmarks reloaded",
		logger.Int("count", len(bookmarks)))

	return nil
}
