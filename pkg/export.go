package dogescan

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

var csvHeader = []string{"SSID", "BSSID", "RSSI", "Channel", "Encryption", "Security Level", "First Seen", "Last Seen"}

// ExportCSV renders a snapshot as one header row followed by one row per network.
func ExportCSV(snap ScanSnapshot) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, n := range snap.Networks {
		row := []string{
			n.SSID,
			n.BSSID.String(),
			strconv.Itoa(n.RSSI),
			strconv.Itoa(n.Channel),
			n.Encryption.String(),
			string(n.SecurityLevel()),
			n.FirstSeen.UTC().Format(time.RFC3339),
			n.LastSeen.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
