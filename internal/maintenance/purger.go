package maintenance

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ordo/internal/repository"
)

// purgeSchedule runs the late-plate purge nightly at 03:00 server time.
const purgeSchedule = "0 3 * * *"

// Purger deletes stale late-plate rows on a nightly schedule. This is a
// retention policy, not a correctness requirement; a failed run just leaves
// rows for the next night.
type Purger struct {
	latePlates repository.LatePlateRepository
	cron       *cron.Cron
}

// NewPurger builds a purger over the late-plate repository.
func NewPurger(latePlates repository.LatePlateRepository) *Purger {
	return &Purger{
		latePlates: latePlates,
		cron:       cron.New(),
	}
}

// Start schedules the nightly run. It returns immediately; the cron runner has
// its own goroutine and never blocks request handling.
func (p *Purger) Start() error {
	if _, err := p.cron.AddFunc(purgeSchedule, p.runOnce); err != nil {
		return err
	}
	p.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for an in-flight run to finish.
func (p *Purger) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}

func (p *Purger) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	removed, err := p.latePlates.DeleteRequestedBefore(ctx, today)
	if err != nil {
		log.Printf("late plate purge failed: %v", err)
		return
	}
	log.Printf("late plate purge removed %d stale rows", removed)
}
