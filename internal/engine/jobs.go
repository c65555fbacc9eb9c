package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/scheduler"
)

const PruneFavoritesJobID = "prune_favorites"

func (e *Engine) setupJobs() error {
	if e.cfg.Maintenance == nil || !e.cfg.Maintenance.Enabled {
		log.Info("Maintenance jobs are disabled")
		return nil
	}

	if err := e.scheduler.AddCronJob(
		PruneFavoritesJobID,
		"Prune Favorites",
		"Removes favorites whose fact was deleted",
		e.cfg.Maintenance.PruneSchedule,
		e.runPruneFavoritesJob,
	); err != nil {
		return fmt.Errorf("failed to add prune favorites job: %w", err)
	}

	return nil
}

func (e *Engine) runPruneFavoritesJob(ctx context.Context) error {
	n, err := e.Favorites.PruneOrphans(ctx)
	if err != nil {
		return err
	}
	log.Info("Prune favorites job finished", "removed", n)
	return nil
}

// Job returns the state of a maintenance job.
func (e *Engine) Job(id string) (scheduler.JobInfo, error) {
	info, ok := e.scheduler.GetJob(id)
	if !ok {
		return scheduler.JobInfo{}, notFoundError("Job not found")
	}
	return info, nil
}

// RunJobNow triggers a maintenance job outside its schedule.
// The job runs in the background, Job reports its outcome.
func (e *Engine) RunJobNow(id string) error {
	err := e.scheduler.RunJobNow(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scheduler.ErrJobNotFound):
		return notFoundError("Job not found")
	case errors.Is(err, scheduler.ErrNotRunning):
		return validationError("Maintenance jobs are not running", err)
	default:
		return &Error{Kind: ErrStore, Message: "Failed to trigger job", Err: err}
	}
}
