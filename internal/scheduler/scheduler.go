// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/models"
	"outfit-orchestrator/internal/outfit"
)

// Scheduler pre-generates the day's outfit for configured users every
// morning. Warmed users hit the cache on their first interactive request
// instead of waiting on the generation service.
type Scheduler struct {
	orch        *outfit.Orchestrator
	cron        *gocron.Scheduler
	refreshTime string
	warmUsers   []string
	log         logger.Logger
}

func New(orch *outfit.Orchestrator, refreshTime string, warmUsers []string, log logger.Logger) *Scheduler {
	return &Scheduler{
		orch:        orch,
		cron:        gocron.NewScheduler(time.UTC),
		refreshTime: refreshTime,
		warmUsers:   warmUsers,
		log:         log,
	}
}

// Start registers the daily job and begins running it in the background.
func (s *Scheduler) Start() error {
	_, err := s.cron.Every(1).Day().At(s.refreshTime).Do(s.warm)
	if err != nil {
		return err
	}
	s.cron.StartAsync()
	s.log.Info("morning refresh scheduler started", map[string]interface{}{
		"refresh_time": s.refreshTime,
		"warm_users":   len(s.warmUsers),
	})
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, userID := range s.warmUsers {
		if _, err := s.orch.GenerateDaily(ctx, models.User{ID: userID}); err != nil {
			s.log.Warn("morning refresh failed for user", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
			continue
		}
		s.log.Info("morning refresh warmed daily outfit", map[string]interface{}{
			"user_id": userID,
		})
	}
}
