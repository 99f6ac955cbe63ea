package dogescan

import (
	"encoding/csv"
	"net"
	"strings"
	"testing"
	"time"
)

func TestExportCSV(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	snap := ScanSnapshot{Networks: []NetworkRecord{
		{SSID: `quote "and", comma`, BSSID: net.HardwareAddr{2, 0, 0, 0, 0, 1}, RSSI: -75, Channel: 6, Encryption: EncryptionWPA2, FirstSeen: ts, LastSeen: ts},
		{SSID: "open", BSSID: net.HardwareAddr{2, 0, 0, 0, 0, 2}, RSSI: -90, Channel: 1, Encryption: EncryptionOpen, FirstSeen: ts, LastSeen: ts},
	}}

	out, err := ExportCSV(snap)
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "SSID,BSSID,RSSI,Channel,Encryption,Security Level,First Seen,Last Seen" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	want := []string{`quote "and", comma`, "02:00:00:00:00:01", "-75", "6", "WPA2", "MEDIUM", "2024-03-01T09:00:00Z", "2024-03-01T09:00:00Z"}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Fatalf("column %d: got %q want %q", i, rows[1][i], want[i])
		}
	}
	if rows[2][5] != "NONE" {
		t.Fatalf("open network security level: got %q", rows[2][5])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	out, err := ExportCSV(ScanSnapshot{})
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected only a header line, got %q", out)
	}
}
