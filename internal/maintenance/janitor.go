package maintenance

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tdooms/tracker/internal/database"
)

// Janitor deletes records older than the retention window on a cron
// schedule.
type Janitor struct {
	repo     *database.Repository
	days     int
	schedule string
	cron     *cron.Cron
}

// NewJanitor keeps the last days of records, pruning per schedule
func NewJanitor(repo *database.Repository, days int, schedule string) *Janitor {
	return &Janitor{
		repo:     repo,
		days:     days,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the schedule and runs a first prune right away
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Prune); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()

	j.Prune()
	return nil
}

// Prune deletes all records older than the retention window
func (j *Janitor) Prune() {
	cutoff := time.Now().AddDate(0, 0, -j.days)

	removed, err := j.repo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Retention prune failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Retention prune removed %d records older than %s",
			removed, cutoff.Format("2006-01-02"))
	}
}

// Stop ends the schedule
func (j *Janitor) Stop() {
	j.cron.Stop()
}
