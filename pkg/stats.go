package dogescan

import (
	"sync"
	"time"
)

// StatsTracker owns the process-wide SystemStats counters.
type StatsTracker struct {
	mu    sync.Mutex
	stats SystemStats
}

func NewStatsTracker(start time.Time) *StatsTracker {
	return &StatsTracker{stats: SystemStats{StartedAt: start}}
}

// RecordScan counts a completed pass. raw is the number of networks the
// radio reported, which may exceed what the snapshot holds.
func (t *StatsTracker) RecordScan(raw int, snap ScanSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.TotalScans++
	t.stats.NetworksFound += raw
	t.stats.CurrentNetworks = snap.Count
	t.stats.LastScan = snap.Timestamp
	t.stats.Quality = meanQuality(snap.Networks)
}

func (t *StatsTracker) RecordFailure() {
	t.mu.Lock()
	t.stats.FailedScans++
	t.mu.Unlock()
}

func (t *StatsTracker) AddPackets(n int) {
	t.mu.Lock()
	t.stats.PacketsSent += n
	t.mu.Unlock()
}

func (t *StatsTracker) SetScanning(v bool) {
	t.mu.Lock()
	t.stats.ScanInProgress = v
	t.mu.Unlock()
}

func (t *StatsTracker) SetAutoScan(enabled bool, interval time.Duration) {
	t.mu.Lock()
	t.stats.AutoScan = enabled
	t.stats.ScanInterval = interval.Milliseconds()
	t.mu.Unlock()
}

func (t *StatsTracker) UpdateReading(r SystemReading) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.FreeMemory = r.FreeMemory
	if t.stats.LowestFreeMemory == 0 || r.FreeMemory < t.stats.LowestFreeMemory {
		t.stats.LowestFreeMemory = r.FreeMemory
	}
}

func (t *StatsTracker) Get(now time.Time) SystemStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats
	s.Uptime = int64(now.Sub(s.StartedAt).Seconds())
	return s
}

func meanQuality(networks []NetworkRecord) int {
	if len(networks) == 0 {
		return 0
	}
	sum := 0
	for _, n := range networks {
		sum += SignalQuality(n.RSSI)
	}
	return sum / len(networks)
}
