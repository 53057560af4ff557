// Package scheduler runs cron-driven maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/entities"
)

// StaleImportLister returns import runs still marked processing past a cutoff.
type StaleImportLister interface {
	ListStale(cutoff time.Time) ([]entities.ImportRecord, error)
}

// ImportWatchdog periodically scans for import runs stuck in the processing
// state. A run left in processing past the stale age means the process died
// without finalizing its record; the watchdog surfaces those in the logs so
// an operator can investigate.
type ImportWatchdog struct {
	imports StaleImportLister
	config  config.Watchdog

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewImportWatchdog creates a new watchdog instance.
func NewImportWatchdog(imports StaleImportLister, cfg config.Watchdog) *ImportWatchdog {
	return &ImportWatchdog{
		imports: imports,
		config:  cfg,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the watchdog if it is enabled.
func (w *ImportWatchdog) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return nil
	}

	if !w.config.Enabled {
		log.Printf("Import watchdog: disabled")
		return nil
	}

	entryID, err := w.cron.AddFunc(w.config.Schedule, func() {
		w.scan()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", w.config.Schedule, err)
	}
	w.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, w.cancelFunc = context.WithCancel(ctx)

	w.cron.Start()
	w.isRunning = true

	log.Printf("Import watchdog: started with schedule '%s', stale age %s",
		w.config.Schedule, w.config.StaleAge)

	go func() {
		<-cancelCtx.Done()
		w.Stop()
	}()

	return nil
}

// Stop gracefully stops the watchdog.
func (w *ImportWatchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return
	}

	ctx := w.cron.Stop()
	<-ctx.Done()

	w.isRunning = false
	w.cancelFunc = nil

	log.Printf("Import watchdog: stopped")
}

// IsRunning returns whether the watchdog is active.
func (w *ImportWatchdog) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isRunning
}

// NextRunTime returns when the next scan will occur.
func (w *ImportWatchdog) NextRunTime() *time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.isRunning {
		return nil
	}

	for _, entry := range w.cron.Entries() {
		if entry.ID == w.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// scan looks for stuck import runs and logs each one.
func (w *ImportWatchdog) scan() {
	staleAge := w.config.StaleAge
	if staleAge <= 0 {
		staleAge = 30 * time.Minute
	}
	cutoff := time.Now().Add(-staleAge)

	stale, err := w.imports.ListStale(cutoff)
	if err != nil {
		log.Printf("Import watchdog: scan failed: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	for _, record := range stale {
		log.Printf("Import watchdog: import %d (%s) stuck in processing since %s",
			record.ID, record.Filename, record.StartedAt.Format(time.RFC3339))
	}
	log.Printf("Import watchdog: %d stuck import(s) found", len(stale))
}
