package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/gradeflow/jobwatch/internal/errors"
	"github.com/gradeflow/jobwatch/internal/event"
	"github.com/gradeflow/jobwatch/internal/hostbridge"
	"github.com/gradeflow/jobwatch/internal/job"
	"github.com/gradeflow/jobwatch/internal/ledger"
	"github.com/gradeflow/jobwatch/internal/logging"
)

// Watcher polls the backend for a batch of outstanding jobs and raises
// at most one user notification per job across the session.
type Watcher struct {
	batchJSON string
	prober    Prober
	ledger    ledger.Ledger
	bridge    *hostbridge.Bridge
	bus       *event.Bus
	notifier  Notifier
	logger    *logging.Logger

	pollInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	polling map[string]bool // jobID → poller active
	started bool
}

// New creates a Watcher for the given serialized job batch.
//
// The prober, ledger, bridge, and bus must be non-nil. Passing nil will
// panic early to surface wiring bugs immediately.
func New(batchJSON string, prober Prober, l ledger.Ledger, bridge *hostbridge.Bridge, bus *event.Bus, opts ...Option) *Watcher {
	if prober == nil {
		panic("watcher: Prober must not be nil")
	}
	if l == nil {
		panic("watcher: Ledger must not be nil")
	}
	if bridge == nil {
		panic("watcher: hostbridge.Bridge must not be nil")
	}
	if bus == nil {
		panic("watcher: event.Bus must not be nil")
	}

	cfg := &config{
		pollInterval: defaultPollInterval,
		logger:       logging.NopLogger(),
		notifier:     nopNotifier{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.pollInterval <= 0 {
		cfg.pollInterval = defaultPollInterval
	}
	if cfg.logger == nil {
		cfg.logger = logging.NopLogger()
	}
	if cfg.notifier == nil {
		cfg.notifier = nopNotifier{}
	}

	return &Watcher{
		batchJSON:    batchJSON,
		prober:       prober,
		ledger:       l,
		bridge:       bridge,
		bus:          bus,
		notifier:     cfg.notifier,
		logger:       cfg.logger,
		pollInterval: cfg.pollInterval,
		polling:      make(map[string]bool),
	}
}

// Start parses the job batch and spawns one poller per job whose
// completion marker is absent from the ledger. It returns immediately;
// pollers run in background goroutines. Call Stop to shut down.
//
// The readiness handshake fires after parsing, whether or not the payload
// decoded: a malformed batch means zero pollers, not a startup failure.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return errors.ErrWatcherStarted
	}

	batch, err := job.ParseBatch(w.batchJSON)
	if err != nil {
		w.logger.Error("failed to decode job batch, treating as empty", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.ctx = ctx
	w.cancel = cancel
	w.started = true

	accepted := 0
	for id, desc := range batch {
		if w.polling[id] {
			continue
		}

		done, hasErr := w.ledger.Has(ctx, id)
		if hasErr != nil {
			// Poll anyway: the Set step re-checks atomically, so a read
			// failure here cannot cause a duplicate notification.
			w.logger.Warn("ledger read failed, polling regardless",
				"job_id", id, "error", hasErr)
		}
		if done {
			w.logger.Debug("job already notified, skipping", "job_id", id)
			continue
		}

		w.polling[id] = true
		accepted++

		w.wg.Add(1)
		go func(d job.Descriptor) {
			defer w.wg.Done()
			w.poll(d)
		}(desc)
	}

	w.logger.Info("watcher started",
		"jobs_in_batch", len(batch), "pollers", accepted)

	w.bridge.SignalReady()
	w.bus.Publish(event.NewWatcherReadyEvent(accepted))

	return nil
}

// Stop cancels the context and waits for all pollers to finish.
// It is safe to call multiple times. After Stop, the Watcher may be
// started again; jobs whose markers were set in the meantime are skipped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.mu.Unlock()

	w.wg.Wait()

	w.mu.Lock()
	w.started = false
	w.mu.Unlock()
}

// Polling returns the job IDs with an active poller.
func (w *Watcher) Polling() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.polling))
	for id := range w.polling {
		out = append(out, id)
	}
	return out
}

// poll probes one job until it completes or the watcher stops.
func (w *Watcher) poll(d job.Descriptor) {
	defer func() {
		w.mu.Lock()
		delete(w.polling, d.ID)
		w.mu.Unlock()
	}()

	logger := w.logger.WithJob(d.ID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			logger.Info("poller cancelled")
			return
		case <-ticker.C:
		}

		result, err := w.prober.Fetch(w.ctx, d.ID)
		if err != nil {
			// Transient by contract: transport failures, non-2xx responses
			// and undecodable bodies all retry on the next tick, unbounded.
			logger.Debug("probe failed, retrying", "error", err)
			continue
		}

		if !result.IsCompleted() {
			logger.Debug("still pending", "status", result.Status)
			continue
		}

		// No further ticks for this job: stop the timer before the
		// notification step so a slow ledger or host cannot reschedule.
		ticker.Stop()
		w.finish(d, logger)
		return
	}
}

// finish runs the guarded notification step after a completed observation.
func (w *Watcher) finish(d job.Descriptor, logger *logging.Logger) {
	created, err := w.ledger.Set(w.ctx, d.ID)
	if err != nil {
		// Degrade to "never notifies" rather than risking a duplicate
		// alert on a later retry.
		logger.Error("ledger write failed, suppressing notification", "error", err)
		return
	}

	if !created {
		// A previous watcher instance already notified for this job.
		logger.Debug("completion already recorded, skipping notification")
		w.bus.Publish(event.NewJobSkippedEvent(d.ID))
		return
	}

	w.notifier.Notify(d)
	w.bus.Publish(event.NewJobCompletedEvent(d.ID, d.DisplayName(), d.DisplaySubmittedAt()))

	if err := w.bridge.Push(w.ctx, hostbridge.NewSignal(d.ID)); err != nil {
		logger.Warn("host signal not delivered", "error", err)
	}

	logger.Info("job completed, user notified",
		"name", d.DisplayName(), "submitted_at", d.DisplaySubmittedAt())
}
