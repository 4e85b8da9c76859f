package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tdooms/tracker/internal/config"
	"github.com/tdooms/tracker/internal/models"
	"github.com/tdooms/tracker/pkg/input"
	"github.com/tdooms/tracker/pkg/utils"
	"github.com/tdooms/tracker/pkg/window"
)

// Service drives the tracking loop. Every poll it checks the focused
// window, the idle state and the metrics clock, in that order.
type Service struct {
	config     *config.Config
	sink       Sink
	aggregator *Aggregator
	observer   *Observer
	listeners  []input.Listener
	started    []input.Listener

	lastLogTime  time.Time
	isIdle       bool
	idleStart    time.Time
	idlePeriodID *uint

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

func NewService(cfg *config.Config, sink Sink, detector window.Detector, listeners []input.Listener) *Service {
	return &Service{
		config:     cfg,
		sink:       sink,
		aggregator: NewAggregator(),
		observer:   NewObserver(detector),
		listeners:  listeners,
		stopChan:   make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("tracker is already running")
	}

	log.Printf("Starting tracker with %v poll interval", s.config.Tracker.PollInterval)

	s.startListeners()

	ticker := time.NewTicker(s.config.Tracker.PollInterval)
	defer ticker.Stop()

	s.begin(time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Println("Tracker stopped by context")
			s.shutdown(time.Now())
			s.running.Store(false)
			return ctx.Err()

		case <-s.stopChan:
			log.Println("Tracker stopped")
			s.shutdown(time.Now())
			s.running.Store(false)
			return nil

		case <-ticker.C:
			s.tick(time.Now())
		}
	}
}

// Stop signals the tracking loop to shut down. Safe to call more than
// once and from other goroutines.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Service) IsRunning() bool {
	return s.running.Load()
}

// begin anchors the metrics clock to the start of the current minute
// and performs the first poll. A tracker started mid-minute flushes at
// the next minute boundary, not a full interval after start. The first
// poll only establishes the focused window, it emits nothing.
func (s *Service) begin(now time.Time) {
	s.lastLogTime = now.Truncate(time.Minute)
	s.tick(now)
}

func (s *Service) tick(now time.Time) {
	s.checkWindowChange(now)
	s.checkIdleState(now)
	s.checkMetricsFlush(now)
}

func (s *Service) checkWindowChange(now time.Time) {
	sample := s.observer.Sample()
	if !s.observer.HasChanged(sample) {
		return
	}

	s.flushFocusInterval(now)
	s.observer.Commit(sample, now)
}

// flushFocusInterval stores the interval for the window focused since
// the last change. Intervals under a second are dropped.
func (s *Service) flushFocusInterval(now time.Time) {
	current, since := s.observer.Current()
	if current == nil {
		return
	}

	duration := int64(now.Sub(since).Seconds())
	if duration < 1 {
		return
	}

	interval := &models.FocusInterval{
		Timestamp:   since,
		AppName:     current.AppName,
		WindowTitle: current.WindowTitle,
		Duration:    duration,
	}

	if err := s.sink.AppendFocusInterval(interval); err != nil {
		log.Printf("Failed to store focus interval: %v", err)
		return
	}

	log.Printf("Focus: %s (%s)", current.AppName, utils.FormatRoundedUnit(duration))
}

func (s *Service) checkIdleState(now time.Time) {
	idle := s.aggregator.IdleTime()
	threshold := s.config.Tracker.IdleThreshold

	if !s.isIdle {
		if idle < threshold {
			return
		}

		// The idle period started when the last input arrived, not
		// when the threshold was crossed. Round strips the monotonic
		// reading so the close-time subtraction uses the wall clock.
		s.isIdle = true
		s.idleStart = now.Add(-idle).Round(0)
		s.idlePeriodID = nil

		id, err := s.sink.OpenIdlePeriod(s.idleStart)
		if err != nil {
			log.Printf("Failed to open idle period: %v", err)
		} else {
			s.idlePeriodID = &id
		}

		log.Printf("User went idle at %s", utils.FormatTimestamp(s.idleStart))
		return
	}

	if idle >= threshold {
		return
	}

	s.isIdle = false
	if s.idlePeriodID != nil {
		duration := int64(now.Sub(s.idleStart).Seconds())
		if err := s.sink.CloseIdlePeriod(*s.idlePeriodID, now, duration); err != nil {
			log.Printf("Failed to close idle period: %v", err)
		} else {
			log.Printf("User became active again after %ds idle", duration)
		}
		s.idlePeriodID = nil
	}
	s.aggregator.ResetIdleTimer()
}

func (s *Service) checkMetricsFlush(now time.Time) {
	if now.Sub(s.lastLogTime) < s.config.Tracker.MetricsInterval {
		return
	}

	s.flushMetrics(now)
	s.lastLogTime = now.Truncate(time.Minute)
}

// flushMetrics drains the aggregator and stores a snapshot when any
// counter is non-zero.
func (s *Service) flushMetrics(now time.Time) {
	m := s.aggregator.DrainMetrics()
	if !m.Any() {
		return
	}

	snapshot := &models.InputSnapshot{
		Timestamp:     now,
		KeyPresses:    m.KeyPresses,
		MouseClicks:   m.MouseClicks,
		MouseDistance: m.MouseDistance,
	}

	if err := s.sink.AppendInputSnapshot(snapshot); err != nil {
		log.Printf("Failed to store input snapshot: %v", err)
		return
	}

	log.Printf("Input: %d keys, %d clicks, %dpx mouse travel", m.KeyPresses, m.MouseClicks, m.MouseDistance)
}

// shutdown flushes the open focus interval and any pending metrics,
// then releases the listeners and the sink.
func (s *Service) shutdown(now time.Time) {
	s.flushFocusInterval(now)
	s.flushMetrics(now)
	s.stopListeners()

	if err := s.sink.Close(); err != nil {
		log.Printf("Failed to close storage: %v", err)
	}
}

func (s *Service) startListeners() {
	for _, l := range s.listeners {
		if err := l.Start(s.aggregator); err != nil {
			log.Printf("Failed to start %s listener: %v", l.Name(), err)
			continue
		}
		s.started = append(s.started, l)
		log.Printf("Started %s listener", l.Name())
	}
}

func (s *Service) stopListeners() {
	for _, l := range s.started {
		l.Stop()
	}
	s.started = nil
}
