// services/sweeper.go - Background retention cleanup
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"predictplay/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Sweeper periodically purges leaderboard rows of long-closed groups and
// guest accounts that never played.
type Sweeper struct {
	db        *gorm.DB
	scheduler gocron.Scheduler
	retention time.Duration
}

var sweeper *Sweeper

// InitSweeper starts the retention scheduler.
func InitSweeper(db *gorm.DB) {
	retentionDays := 30
	if v := os.Getenv("SWEEPER_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retentionDays = n
		}
	}

	s := &Sweeper{
		db:        db,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("⚠️ Sweeper disabled: %v", err)
		return
	}
	s.scheduler = sched

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.sweep),
	)
	sched.Start()

	sweeper = s
	log.Printf("🧹 Retention sweeper started (retention %dd)", retentionDays)
}

// GetSweeper returns the running sweeper, or nil.
func GetSweeper() *Sweeper {
	return sweeper
}

// Stop shuts the scheduler down.
func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.retention)

	// Stats rows of groups closed beyond the retention window
	res := s.db.Where(
		"group_id IN (SELECT id FROM groups WHERE status = ? AND updated_at < ?)",
		models.GroupStatusClosed, cutoff,
	).Delete(&models.GroupStat{})
	if res.Error != nil {
		log.Printf("[Sweeper] group stats purge failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("✅ Purged %d stale group stat rows", res.RowsAffected)
	}

	// Guest accounts that never submitted a prediction. Guests with a
	// membership row (past or present) are kept so their groups stay intact.
	res = s.db.Where(
		"is_guest = ? AND total_predictions = 0 AND created_at < ?"+
			" AND id NOT IN (SELECT user_id FROM group_members)",
		true, cutoff,
	).Delete(&models.User{})
	if res.Error != nil {
		log.Printf("[Sweeper] guest purge failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("✅ Purged %d stale guest accounts", res.RowsAffected)
	}
}
