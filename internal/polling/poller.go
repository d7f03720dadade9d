package polling

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// Constants for polling configuration
const (
	// DefaultInterval is the default polling interval
	DefaultInterval = 60 * time.Second
	// MinInterval is the minimum allowed polling interval
	MinInterval = 5 * time.Second
	// DefaultTimeout bounds a single snapshot fetch
	DefaultTimeout = 2 * time.Minute
)

// SnapshotFetcher fetches one snapshot of build statistics.
// *buildstats.Service satisfies it.
type SnapshotFetcher interface {
	Snapshot(ctx context.Context, opts buildstats.QueryOptions) (buildstats.Snapshot, error)
}

// Poller manages background polling of build snapshots.
type Poller struct {
	fetcher  SnapshotFetcher
	opts     buildstats.QueryOptions
	interval time.Duration
	timeout  time.Duration
	observer func(buildstats.Snapshot)
	log      *logrus.Entry
	stopped  bool
	mu       sync.RWMutex
}

// Option configures a Poller.
type Option func(*Poller)

// WithObserver registers fn to be called with every successful snapshot.
func WithObserver(fn func(buildstats.Snapshot)) Option {
	return func(p *Poller) { p.observer = fn }
}

// WithTimeout bounds each fetch. Non-positive values keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger used for fetch results.
func WithLogger(log *logrus.Entry) Option {
	return func(p *Poller) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPoller creates a new Poller with the given fetcher and interval.
// If interval is 0 or less than MinInterval, DefaultInterval or MinInterval is used.
func NewPoller(fetcher SnapshotFetcher, queryOpts buildstats.QueryOptions, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	p := &Poller{
		fetcher: fetcher,
		opts:    queryOpts,
		timeout: DefaultTimeout,
		log:     logrus.WithField("component", "poller"),
	}
	p.SetInterval(interval)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the current polling interval.
func (p *Poller) Interval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.interval
}

// SetInterval updates the polling interval.
// If interval is less than MinInterval, MinInterval is used.
func (p *Poller) SetInterval(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if interval < MinInterval {
		interval = MinInterval
	}
	p.interval = interval
}

// Stop stops the poller from making further API calls.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

// IsStopped returns true if the poller has been stopped.
func (p *Poller) IsStopped() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stopped
}

// FetchSnapshot returns a tea.Cmd that fetches a snapshot.
// Returns nil if the poller has been stopped.
func (p *Poller) FetchSnapshot() tea.Cmd {
	if p.IsStopped() {
		return nil
	}

	p.mu.RLock()
	opts := p.opts
	timeout := p.timeout
	p.mu.RUnlock()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		snapshot, err := p.fetcher.Snapshot(ctx, opts)
		if err != nil {
			p.log.WithError(err).Warn("Failed to fetch build snapshot.")
			return SnapshotUpdated{Err: err}
		}

		p.log.WithFields(logrus.Fields{
			"definitions": len(snapshot.Report.Projects),
			"duration":    time.Since(start).String(),
		}).Debug("Fetched build snapshot.")
		if p.observer != nil {
			p.observer(snapshot)
		}
		return SnapshotUpdated{Snapshot: snapshot}
	}
}

// StartPolling returns a tea.Cmd that starts the polling timer.
// It will send a TickMsg after the configured interval.
func (p *Poller) StartPolling() tea.Cmd {
	if p.IsStopped() {
		return nil
	}

	interval := p.Interval()
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// OnTick handles a tick event by fetching data and scheduling the next tick.
func (p *Poller) OnTick() tea.Cmd {
	if p.IsStopped() {
		return nil
	}

	return tea.Batch(
		p.FetchSnapshot(),
		p.StartPolling(),
	)
}
