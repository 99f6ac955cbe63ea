package network_wifi

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	dogescan "github.com/dogeorg/dogescan/pkg"
)

var _ dogescan.Radio = &IWListScanner{}

// IWListScanner scans using the wireless-tools `iwlist <iface> scan`
// command, which requires CAP_NET_ADMIN to trigger a fresh scan.
type IWListScanner struct {
	Interface string
	run       func(ctx context.Context, iface string) ([]byte, error)
}

func NewIWListScanner(iface string) *IWListScanner {
	return &IWListScanner{Interface: iface, run: runIWList}
}

func (s IWListScanner) Scan(ctx context.Context) ([]dogescan.ScanResult, error) {
	out, err := s.run(ctx, s.Interface)
	if err != nil {
		return nil, err
	}
	return parseIWListOutput(string(out)), nil
}

func runIWList(ctx context.Context, iface string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "iwlist", iface, "scan")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("iwlist %s scan: %w: %s", iface, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

var (
	addressRegex    = regexp.MustCompile(`Address: ([0-9A-Fa-f:]{17})`)
	ssidRegex       = regexp.MustCompile(`ESSID:"(.*)"`)
	channelRegex    = regexp.MustCompile(`Channel[: ](\d+)`)
	dbmRegex        = regexp.MustCompile(`Signal level=(-?\d+) dBm`)
	relativeRegex   = regexp.MustCompile(`Signal level=(\d+)/(\d+)`)
	encryptionRegex = regexp.MustCompile(`Encryption key:(on|off)`)
	wpa2Regex       = regexp.MustCompile(`IE: IEEE 802.11i/WPA2 Version`)
	wpaRegex        = regexp.MustCompile(`IE: WPA Version 1`)
	authRegex       = regexp.MustCompile(`Authentication Suites \(\d+\) : (.*)`)
)

func parseIWListOutput(output string) []dogescan.ScanResult {
	var networks []dogescan.ScanResult
	cells := strings.Split(output, "Cell ")

	for _, cell := range cells {
		address := addressRegex.FindStringSubmatch(cell)
		if len(address) < 2 {
			continue
		}
		bssid, err := net.ParseMAC(address[1])
		if err != nil {
			continue
		}

		ssid := ""
		if m := ssidRegex.FindStringSubmatch(cell); len(m) > 1 {
			ssid = m[1]
		}
		hidden := isHiddenSSID(ssid)
		if hidden {
			ssid = ""
		}

		channel := 0
		if m := channelRegex.FindStringSubmatch(cell); len(m) > 1 {
			channel, _ = strconv.Atoi(m[1])
		}

		networks = append(networks, dogescan.ScanResult{
			SSID:       ssid,
			BSSID:      bssid,
			RSSI:       parseSignal(cell),
			Channel:    channel,
			Encryption: parseEncryption(cell),
			Hidden:     hidden,
		})
	}

	return networks
}

// some drivers report signal as a fraction rather than dBm
func parseSignal(cell string) int {
	if m := dbmRegex.FindStringSubmatch(cell); len(m) > 1 {
		v, _ := strconv.Atoi(m[1])
		return v
	}
	if m := relativeRegex.FindStringSubmatch(cell); len(m) > 2 {
		v, _ := strconv.Atoi(m[1])
		scale, _ := strconv.Atoi(m[2])
		if scale > 0 {
			return (v*100/scale)/2 - 100
		}
	}
	return -100
}

func parseEncryption(cell string) dogescan.EncryptionType {
	key := encryptionRegex.FindStringSubmatch(cell)
	if len(key) < 2 {
		return dogescan.EncryptionUnknown
	}
	if key[1] == "off" {
		return dogescan.EncryptionOpen
	}

	rsn := wpa2Regex.MatchString(cell)
	wpa := wpaRegex.MatchString(cell)

	var psk, sae, dot1x bool
	for _, m := range authRegex.FindAllStringSubmatch(cell, -1) {
		suites := m[1]
		psk = psk || strings.Contains(suites, "PSK")
		sae = sae || strings.Contains(suites, "SAE")
		dot1x = dot1x || strings.Contains(suites, "802.1x")
	}

	switch {
	case rsn && sae && psk:
		return dogescan.EncryptionWPA2WPA3
	case rsn && sae:
		return dogescan.EncryptionWPA3
	case rsn && dot1x:
		return dogescan.EncryptionWPA2Enterprise
	case rsn && wpa:
		return dogescan.EncryptionWPAWPA2
	case rsn:
		return dogescan.EncryptionWPA2
	case wpa:
		return dogescan.EncryptionWPA
	default:
		return dogescan.EncryptionWEP
	}
}

// iwlist prints hidden SSIDs as empty or as escaped NUL bytes
func isHiddenSSID(ssid string) bool {
	return strings.ReplaceAll(ssid, `\x00`, "") == ""
}
