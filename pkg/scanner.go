package dogescan

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

/* ScanEngine drives the Radio and fills the NetworkStore.
 *
 * Every trigger (scan timer, button, client command) goes through
 * RunScan, which allows at most one scan in flight regardless of
 * which goroutine asks for it.
 */
type ScanEngine struct {
	radio    Radio
	store    *NetworkStore
	stats    *StatsTracker
	now      func() time.Time
	scanning atomic.Bool
}

func NewScanEngine(radio Radio, store *NetworkStore, stats *StatsTracker) *ScanEngine {
	return &ScanEngine{
		radio: radio,
		store: store,
		stats: stats,
		now:   time.Now,
	}
}

// WithClock replaces the time source, used to stamp observations.
func (t *ScanEngine) WithClock(now func() time.Time) *ScanEngine {
	t.now = now
	return t
}

func (t *ScanEngine) Scanning() bool {
	return t.scanning.Load()
}

// RunScan performs one scan pass. It returns ErrScanInProgress, leaving the
// store and counters untouched, if another pass is already running.
func (t *ScanEngine) RunScan(ctx context.Context) (ScanSnapshot, error) {
	if !t.scanning.CompareAndSwap(false, true) {
		return ScanSnapshot{}, ErrScanInProgress
	}
	t.store.setInProgress(true)
	t.stats.SetScanning(true)
	defer func() {
		t.store.setInProgress(false)
		t.stats.SetScanning(false)
		t.scanning.Store(false)
	}()

	started := t.now()
	found, err := t.radio.Scan(ctx)
	if err != nil {
		t.stats.RecordFailure()
		log.WithField("component", "scanner").WithError(err).Warn("radio scan failed")
		return ScanSnapshot{}, fmt.Errorf("%w: %w", ErrScanFailed, err)
	}

	raw := len(found)
	if raw > MaxNetworks {
		found = found[:MaxNetworks]
	}

	results := make([]ScanResult, len(found))
	copy(results, found)
	for i := range results {
		if results[i].ObservedAt.IsZero() {
			results[i].ObservedAt = t.now()
		}
	}

	snap := t.store.Commit(results, t.now())
	snap.InProgress = false
	t.stats.RecordScan(raw, snap)

	log.WithFields(log.Fields{
		"component": "scanner",
		"found":     raw,
		"stored":    snap.Count,
		"took":      t.now().Sub(started),
	}).Debug("scan complete")
	return snap, nil
}
