package bot

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartSessionSweepWorker periodically purges expired callbacks and expires
// overdue game sessions. Sessions whose refund failed are retried on every
// pass. Returns a cleanup function to stop the worker gracefully.
func (b *Bot) StartSessionSweepWorker(ctx context.Context, interval time.Duration) func() {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{})

	sweep := func() {
		purged := b.router.Sweep()
		expired := b.engine.Sweep(ctx)
		if purged > 0 || expired > 0 {
			log.WithFields(log.Fields{
				"purgedCallbacks": purged,
				"expiredSessions": expired,
				"liveSessions":    b.engine.Live(),
			}).Info("Session sweep completed")
		}
	}

	go func() {
		log.WithField("interval", interval).Info("Session sweep worker started")

		for {
			select {
			case <-ctx.Done():
				log.Info("Session sweep worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Session sweep worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}
