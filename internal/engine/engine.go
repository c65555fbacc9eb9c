package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/cache"
	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/jon4hz/funfacts/internal/gravatar"
	"github.com/jon4hz/funfacts/internal/notify/email"
	"github.com/jon4hz/funfacts/internal/scheduler"
)

// Engine wires the managers to the store and runs the maintenance jobs.
type Engine struct {
	cfg        *config.Config
	db         database.DB
	scheduler  *scheduler.Scheduler
	categories *cache.CategoryCache

	Users     *UserManager
	Facts     *FactManager
	Favorites *FavoriteManager
}

// New creates a new Engine instance.
func New(cfg *config.Config, db database.DB) (*Engine, error) {
	sched, err := scheduler.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	categories, err := cache.NewCategoryCache(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create category cache: %w", err)
	}

	avatars, err := gravatar.New(cfg.Gravatar)
	if err != nil {
		return nil, fmt.Errorf("failed to configure gravatar: %w", err)
	}

	userOpts := UserManagerOptions{
		Avatars: avatars,
	}
	if cfg.Auth != nil {
		userOpts.BcryptCost = cfg.Auth.BcryptCost
	}
	if cfg.Email != nil && cfg.Email.Enabled {
		mailer, err := email.New(cfg.Email, cfg.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create email service: %w", err)
		}
		userOpts.Notifier = mailer
	}

	e := &Engine{
		cfg:        cfg,
		db:         db,
		scheduler:  sched,
		categories: categories,
		Users:      NewUserManager(db, userOpts),
		Facts:      NewFactManager(db, categories),
		Favorites:  NewFavoriteManager(db),
	}

	if err := e.setupJobs(); err != nil {
		return nil, fmt.Errorf("failed to setup jobs: %w", err)
	}

	return e, nil
}

// Stats returns aggregate numbers about the store.
func (e *Engine) Stats(ctx context.Context) (*database.Stats, error) {
	stats, err := e.db.GetStats(ctx)
	if err != nil {
		return nil, storeError("Failed to get stats", err)
	}
	return stats, nil
}

// CacheStats returns the counters of the category cache.
func (e *Engine) CacheStats() cache.Stats {
	return e.categories.Stats()
}

// Jobs returns the state of the maintenance jobs.
func (e *Engine) Jobs() []scheduler.JobInfo {
	return e.scheduler.GetJobs()
}

// Run starts the background jobs and blocks until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	e.scheduler.Start()
	<-ctx.Done()
	log.Debug("Engine context done")
	return nil
}

// Close stops the scheduler and waits for pending welcome mails.
func (e *Engine) Close() error {
	err := e.scheduler.Stop()
	e.Users.Wait()
	return err
}
