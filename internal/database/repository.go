package database

import (
	"time"

	"github.com/tdooms/tracker/internal/models"

	"github.com/pkg/errors"
)

// Repository handles all database operations for tracking records
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// AppendFocusInterval inserts a completed focus interval
func (r *Repository) AppendFocusInterval(rec *models.FocusInterval) error {
	result := r.db.Create(rec)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert focus interval")
	}
	return nil
}

// AppendInputSnapshot inserts an input metrics snapshot
func (r *Repository) AppendInputSnapshot(rec *models.InputSnapshot) error {
	result := r.db.Create(rec)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert input snapshot")
	}
	return nil
}

// OpenIdlePeriod inserts an idle period with no end time and returns
// its ID so the period can be closed later
func (r *Repository) OpenIdlePeriod(start time.Time) (uint, error) {
	rec := &models.IdlePeriod{StartTime: start}
	result := r.db.Create(rec)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to open idle period")
	}
	return rec.ID, nil
}

// CloseIdlePeriod fills in the end time and duration of an open idle
// period. Closing an unknown ID is a no-op.
func (r *Repository) CloseIdlePeriod(id uint, end time.Time, duration int64) error {
	result := r.db.Model(&models.IdlePeriod{}).Where("id = ?", id).
		Updates(map[string]interface{}{"end_time": end, "duration": duration})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to close idle period")
	}
	return nil
}

// DeleteOlderThan removes records older than the cutoff from all three
// tracking tables and returns the number of rows removed
func (r *Repository) DeleteOlderThan(before time.Time) (int64, error) {
	var total int64

	result := r.db.Where("timestamp < ?", before).Delete(&models.FocusInterval{})
	if result.Error != nil {
		return total, errors.Wrap(result.Error, "failed to delete old focus intervals")
	}
	total += result.RowsAffected

	result = r.db.Where("timestamp < ?", before).Delete(&models.InputSnapshot{})
	if result.Error != nil {
		return total, errors.Wrap(result.Error, "failed to delete old input snapshots")
	}
	total += result.RowsAffected

	result = r.db.Where("start_time < ?", before).Delete(&models.IdlePeriod{})
	if result.Error != nil {
		return total, errors.Wrap(result.Error, "failed to delete old idle periods")
	}
	total += result.RowsAffected

	return total, nil
}

// Clear removes all tracking records from the database
func (r *Repository) Clear() error {
	for _, table := range []string{"focus_intervals", "input_snapshots", "idle_periods"} {
		result := r.db.Exec("DELETE FROM " + table)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to clear "+table)
		}
	}
	return nil
}

// Close releases the underlying database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
