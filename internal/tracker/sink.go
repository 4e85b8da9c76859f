package tracker

import (
	"time"

	"github.com/tdooms/tracker/internal/models"
)

// Sink persists tracking records. *database.Repository is the
// production implementation.
type Sink interface {
	// AppendFocusInterval stores a completed focus interval
	AppendFocusInterval(rec *models.FocusInterval) error

	// AppendInputSnapshot stores an input metrics snapshot
	AppendInputSnapshot(rec *models.InputSnapshot) error

	// OpenIdlePeriod stores an idle period with no end time and returns
	// its ID so the period can be closed later
	OpenIdlePeriod(start time.Time) (uint, error)

	// CloseIdlePeriod fills in the end time and duration of an open period
	CloseIdlePeriod(id uint, end time.Time, duration int64) error

	// Close releases the sink
	Close() error
}
