package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/user/dreamyvoice/internal/logger"
)

const purgeTimeout = time.Minute

type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CleanupService periodically removes expired sessions.
type CleanupService struct {
	sessions sessionPurger
	schedule string
	cron     *cron.Cron
}

func NewCleanupService(sessions sessionPurger, schedule string) *CleanupService {
	return &CleanupService{
		sessions: sessions,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start runs one purge right away and then on the configured schedule.
func (s *CleanupService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runCleanup); err != nil {
		return err
	}
	go s.runCleanup()
	s.cron.Start()
	return nil
}

// Stop waits for a running purge to finish.
func (s *CleanupService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *CleanupService) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	affected, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		logger.Warningf("[CleanupService] failed to purge expired sessions: %v", err)
		return
	}
	if affected > 0 {
		logger.Infof("[CleanupService] purged %d expired sessions", affected)
	}
}
