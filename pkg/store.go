package dogescan

import (
	"fmt"
	"sync"
	"time"
)

/* NetworkStore holds the current ScanSnapshot. A completed scan
 * replaces the snapshot wholesale, no history is retained apart
 * from the first-seen time of networks that are still around.
 *
 * Duplicate identity keys within one pass are compacted: the
 * earlier record is touched (LastSeen, Count) and the later
 * observation is not stored.
 */
type NetworkStore struct {
	mu      sync.RWMutex
	current ScanSnapshot
}

func NewNetworkStore() *NetworkStore {
	return &NetworkStore{
		current: ScanSnapshot{Networks: []NetworkRecord{}},
	}
}

// Snapshot returns a copy of the current snapshot
func (s *NetworkStore) Snapshot() ScanSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.current
	snap.Networks = append([]NetworkRecord{}, s.current.Networks...)
	return snap
}

func (s *NetworkStore) Get(index int) (NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.current.Networks) {
		return NetworkRecord{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.current.Networks))
	}
	return s.current.Networks[index], nil
}

func (s *NetworkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current.Networks)
}

func (s *NetworkStore) setInProgress(v bool) {
	s.mu.Lock()
	s.current.InProgress = v
	s.mu.Unlock()
}

// Commit builds a new snapshot from one scan pass and makes it current.
func (s *NetworkStore) Commit(results []ScanResult, at time.Time) ScanSnapshot {
	if len(results) > MaxNetworks {
		results = results[:MaxNetworks]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := make(map[networkKey]time.Time, len(s.current.Networks))
	for _, n := range s.current.Networks {
		previous[n.key()] = n.FirstSeen
	}

	records := make([]NetworkRecord, 0, len(results))
	written := make(map[networkKey]int, len(results))

	for _, r := range results {
		rec := NetworkRecord{
			SSID:       r.SSID,
			BSSID:      r.BSSID,
			RSSI:       r.RSSI,
			Channel:    r.Channel,
			Encryption: r.Encryption,
			Hidden:     r.Hidden || r.SSID == "",
			FirstSeen:  r.ObservedAt,
			LastSeen:   r.ObservedAt,
			Count:      1,
		}

		k := rec.key()
		if i, ok := written[k]; ok {
			records[i].LastSeen = r.ObservedAt
			records[i].Count++
			continue
		}

		if fs, ok := previous[k]; ok && !fs.IsZero() {
			rec.FirstSeen = fs
		}
		written[k] = len(records)
		records = append(records, rec)
	}

	s.current = ScanSnapshot{
		Networks:   records,
		Count:      len(records),
		Timestamp:  at,
		InProgress: s.current.InProgress,
	}

	snap := s.current
	snap.Networks = append([]NetworkRecord{}, records...)
	return snap
}
