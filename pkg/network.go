package dogescan

import (
	"context"
	"encoding/json"
	"net"
	"time"
)

// MaxNetworks is the fixed capacity of a scan snapshot.
const MaxNetworks = 50

type EncryptionType int

const (
	EncryptionOpen EncryptionType = iota
	EncryptionWEP
	EncryptionWPA
	EncryptionWPA2
	EncryptionWPAWPA2
	EncryptionWPA2Enterprise
	EncryptionWPA3
	EncryptionWPA2WPA3
	EncryptionUnknown
)

/* ScanResult is a single network as reported by the radio,
 * before it has been merged into the store.
 *
 * ObservedAt is optional, the scan engine stamps results
 * that arrive without one.
 */
type ScanResult struct {
	SSID       string
	BSSID      net.HardwareAddr
	RSSI       int
	Channel    int
	Encryption EncryptionType
	Hidden     bool
	ObservedAt time.Time
}

// A Radio performs a synchronous scan of nearby networks,
// hidden networks included.
type Radio interface {
	Scan(ctx context.Context) ([]ScanResult, error)
}

type NetworkRecord struct {
	SSID       string
	BSSID      net.HardwareAddr
	RSSI       int
	Channel    int
	Encryption EncryptionType
	Hidden     bool
	FirstSeen  time.Time
	LastSeen   time.Time
	Count      int
}

// identity key used to deduplicate observations within a pass
type networkKey struct {
	ssid  string
	bssid string
}

func (t NetworkRecord) key() networkKey {
	return networkKey{t.SSID, t.BSSID.String()}
}

func (t NetworkRecord) SecurityLevel() SecurityLevel {
	return ClassifySecurity(t.Encryption, t.RSSI)
}

func (t NetworkRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SSID          string        `json:"ssid"`
		BSSID         string        `json:"bssid"`
		RSSI          int           `json:"rssi"`
		Channel       int           `json:"channel"`
		Encryption    string        `json:"encryption"`
		Hidden        bool          `json:"hidden"`
		FirstSeen     time.Time     `json:"firstSeen"`
		LastSeen      time.Time     `json:"lastSeen"`
		Count         int           `json:"count"`
		SecurityLevel SecurityLevel `json:"securityLevel"`
		Quality       int           `json:"quality"`
	}{
		SSID:          t.SSID,
		BSSID:         t.BSSID.String(),
		RSSI:          t.RSSI,
		Channel:       t.Channel,
		Encryption:    t.Encryption.String(),
		Hidden:        t.Hidden,
		FirstSeen:     t.FirstSeen,
		LastSeen:      t.LastSeen,
		Count:         t.Count,
		SecurityLevel: t.SecurityLevel(),
		Quality:       SignalQuality(t.RSSI),
	})
}

type ScanSnapshot struct {
	Networks   []NetworkRecord `json:"networks"`
	Count      int             `json:"count"`
	Timestamp  time.Time       `json:"timestamp"`
	InProgress bool            `json:"inProgress"`
}

type SystemStats struct {
	StartedAt        time.Time `json:"startedAt"`
	Uptime           int64     `json:"uptime"` // seconds
	FreeMemory       uint64    `json:"freeMemory"`
	LowestFreeMemory uint64    `json:"lowestFreeMemory"`
	TotalScans       int       `json:"totalScans"`
	FailedScans      int       `json:"failedScans"`
	NetworksFound    int       `json:"networksFound"`
	PacketsSent      int       `json:"packetsSent"`
	CurrentNetworks  int       `json:"currentNetworks"`
	Quality          int       `json:"quality"`
	LastScan         time.Time `json:"lastScan"`
	ScanInProgress   bool      `json:"scanInProgress"`
	AutoScan         bool      `json:"autoScan"`
	ScanInterval     int64     `json:"scanInterval"` // ms
}

// A SystemReading is produced periodically by the SystemMonitor
type SystemReading struct {
	FreeMemory uint64
}

type SystemMonitor interface {
	GetReadingChannel() chan SystemReading
}

// Settings the operator can change at runtime that survive
// a restart. Scan results are never persisted.
type Settings struct {
	AutoScan     bool
	ScanInterval time.Duration
}

type SettingsStore interface {
	Load() (Settings, error)
	Save(Settings) error
}
