package dogescan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"
)

// fakeRadio returns canned results, optionally blocking until released
type fakeRadio struct {
	mu      sync.Mutex
	results []ScanResult
	err     error
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (r *fakeRadio) Scan(ctx context.Context) ([]ScanResult, error) {
	r.mu.Lock()
	r.calls++
	entered, release := r.entered, r.release
	r.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ScanResult{}, r.results...), r.err
}

func sampleResults() []ScanResult {
	return []ScanResult{
		{SSID: "home", BSSID: net.HardwareAddr{2, 0, 0, 0, 0, 1}, RSSI: -50, Channel: 6, Encryption: EncryptionWPA2},
		{SSID: "cafe", BSSID: net.HardwareAddr{2, 0, 0, 0, 0, 2}, RSSI: -85, Channel: 36, Encryption: EncryptionOpen},
	}
}

func TestRunScanCommitsAndCounts(t *testing.T) {
	radio := &fakeRadio{results: sampleResults()}
	store := NewNetworkStore()
	stats := NewStatsTracker(time.Now())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := NewScanEngine(radio, store, stats).WithClock(func() time.Time { return now })

	snap, err := engine.RunScan(context.Background())
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if snap.Count != 2 || store.Len() != 2 {
		t.Fatalf("expected 2 networks, got %d (store %d)", snap.Count, store.Len())
	}
	if !snap.Networks[0].FirstSeen.Equal(now) {
		t.Fatalf("observations should be stamped with the clock, got %s", snap.Networks[0].FirstSeen)
	}
	s := stats.Get(now)
	if s.TotalScans != 1 || s.NetworksFound != 2 || s.CurrentNetworks != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.ScanInProgress || engine.Scanning() {
		t.Fatalf("scan flag left set")
	}
}

func TestRunScanRejectsConcurrentScan(t *testing.T) {
	radio := &fakeRadio{
		results: sampleResults(),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	stats := NewStatsTracker(time.Now())
	engine := NewScanEngine(radio, NewNetworkStore(), stats)

	done := make(chan error, 1)
	go func() {
		_, err := engine.RunScan(context.Background())
		done <- err
	}()
	<-radio.entered

	if _, err := engine.RunScan(context.Background()); !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}

	close(radio.release)
	if err := <-done; err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	if radio.calls != 1 {
		t.Fatalf("radio should be driven once, got %d", radio.calls)
	}
	if s := stats.Get(time.Now()); s.TotalScans != 1 || s.NetworksFound != 2 {
		t.Fatalf("rejected scan touched counters: total=%d found=%d", s.TotalScans, s.NetworksFound)
	}
}

func TestRunScanCountsUncappedResults(t *testing.T) {
	results := make([]ScanResult, MaxNetworks+10)
	for i := range results {
		results[i] = ScanResult{SSID: fmt.Sprintf("net-%d", i), BSSID: net.HardwareAddr{2, 0, 0, 0, byte(i >> 8), byte(i)}, RSSI: -60}
	}
	store := NewNetworkStore()
	stats := NewStatsTracker(time.Now())
	engine := NewScanEngine(&fakeRadio{results: results}, store, stats)

	snap, err := engine.RunScan(context.Background())
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if snap.Count != MaxNetworks || store.Len() != MaxNetworks {
		t.Fatalf("expected %d stored, got %d (store %d)", MaxNetworks, snap.Count, store.Len())
	}
	s := stats.Get(time.Now())
	if s.NetworksFound != MaxNetworks+10 || s.CurrentNetworks != MaxNetworks {
		t.Fatalf("unexpected counters: found=%d current=%d", s.NetworksFound, s.CurrentNetworks)
	}
}

func TestRunScanFailureKeepsSnapshot(t *testing.T) {
	radio := &fakeRadio{results: sampleResults()}
	store := NewNetworkStore()
	stats := NewStatsTracker(time.Now())
	engine := NewScanEngine(radio, store, stats)

	if _, err := engine.RunScan(context.Background()); err != nil {
		t.Fatalf("returned error: %v", err)
	}

	radio.err = errors.New("device busy")
	_, err := engine.RunScan(context.Background())
	if !errors.Is(err, ErrScanFailed) {
		t.Fatalf("expected ErrScanFailed, got %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("previous snapshot should survive a failed scan, got %d networks", store.Len())
	}
	s := stats.Get(time.Now())
	if s.FailedScans != 1 || s.TotalScans != 1 {
		t.Fatalf("unexpected counters: failed=%d total=%d", s.FailedScans, s.TotalScans)
	}
	if engine.Scanning() {
		t.Fatalf("scan flag left set after failure")
	}
}
