package maintenance

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tdooms/tracker/internal/database"
	"github.com/tdooms/tracker/internal/models"
)

func newTestRepo(t *testing.T) (*database.DB, *database.Repository) {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db, database.NewRepository(db)
}

func TestPruneRemovesOldRecords(t *testing.T) {
	db, repo := newTestRepo(t)

	old := time.Now().AddDate(0, 0, -40)
	recent := time.Now().Add(-time.Hour)

	for _, ts := range []time.Time{old, recent} {
		err := repo.AppendFocusInterval(&models.FocusInterval{
			Timestamp:   ts,
			AppName:     "firefox",
			WindowTitle: "Example",
			Duration:    10,
		})
		if err != nil {
			t.Fatalf("AppendFocusInterval() error: %v", err)
		}

		err = repo.AppendInputSnapshot(&models.InputSnapshot{
			Timestamp:  ts,
			KeyPresses: 42,
		})
		if err != nil {
			t.Fatalf("AppendInputSnapshot() error: %v", err)
		}

		if _, err := repo.OpenIdlePeriod(ts); err != nil {
			t.Fatalf("OpenIdlePeriod() error: %v", err)
		}
	}

	j := NewJanitor(repo, 30, "@daily")
	j.Prune()

	for _, tc := range []struct {
		name  string
		model interface{}
	}{
		{"focus_intervals", &models.FocusInterval{}},
		{"input_snapshots", &models.InputSnapshot{}},
		{"idle_periods", &models.IdlePeriod{}},
	} {
		var count int64
		if err := db.Model(tc.model).Count(&count).Error; err != nil {
			t.Fatalf("counting %s: %v", tc.name, err)
		}
		if count != 1 {
			t.Errorf("%s has %d records after prune, want 1", tc.name, count)
		}
	}
}

func TestStartInvalidSchedule(t *testing.T) {
	_, repo := newTestRepo(t)

	j := NewJanitor(repo, 30, "not a schedule")
	if err := j.Start(); err == nil {
		t.Error("Start() with a bad schedule should fail")
	}
}

func TestStartAndStop(t *testing.T) {
	_, repo := newTestRepo(t)

	j := NewJanitor(repo, 30, "@daily")
	if err := j.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	j.Stop()
}
