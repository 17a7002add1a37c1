package services

import (
	"context"
	"sync"
	"time"

	"github.com/amaumene/mainstream/internal/cache"
	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/database"
	"github.com/amaumene/mainstream/pkg/logger"
)

// CleanupService periodically drops stored responses that are past the
// revalidation window.
type CleanupService struct {
	db              database.Database
	cache           cache.Cache
	logger          logger.Logger
	interval        time.Duration
	retentionPeriod time.Duration
	mu              sync.Mutex
	running         bool
	stopChan        chan struct{}
}

// NewCleanupService creates a new cleanup service. db may be nil, in which
// case only cache statistics are logged.
func NewCleanupService(db database.Database, c cache.Cache, log logger.Logger, retention time.Duration) *CleanupService {
	if log == nil {
		log = logger.Discard()
	}
	if retention <= 0 {
		retention = constants.RevalidateWindow
	}
	return &CleanupService{
		db:              db,
		cache:           c,
		logger:          log,
		interval:        constants.CleanupInterval,
		retentionPeriod: retention,
		stopChan:        make(chan struct{}),
	}
}

// SetInterval sets how often cleanup runs
func (c *CleanupService) SetInterval(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = duration
}

// Start begins the cleanup service
func (c *CleanupService) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	interval := c.interval
	c.mu.Unlock()

	c.logger.Infof("[Cleanup] starting with interval %v, retention %v", interval, c.retentionPeriod)

	c.CleanupNow()
	go c.cleanupLoop(ctx, interval)
}

// Stop stops the cleanup service
func (c *CleanupService) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.running = false
	close(c.stopChan)
	c.logger.Infof("[Cleanup] stopped")
}

func (c *CleanupService) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.CleanupNow()
		}
	}
}

// CleanupNow purges stale stored responses and returns how many were removed.
func (c *CleanupService) CleanupNow() int {
	removed := 0
	if c.db != nil {
		n, err := c.db.PurgeOlderThan(c.retentionPeriod)
		if err != nil {
			c.logger.Errorf("[Cleanup] failed to purge stored responses: %v", err)
		} else {
			removed = n
		}
	}

	entries := 0
	if c.cache != nil {
		entries = c.cache.Len()
	}
	c.logger.Debugf("[Cleanup] removed %d stored responses, %d cached in memory", removed, entries)
	return removed
}
