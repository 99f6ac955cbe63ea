package network_wifi

import (
	"context"
	"math/rand/v2"
	"net"
	"sync"

	dogescan "github.com/dogeorg/dogescan/pkg"
)

var _ dogescan.Radio = &DemoRadio{}

type demoAP struct {
	ssid    string
	bssid   string
	rssi    int
	channel int
	enc     dogescan.EncryptionType
}

var demoAPs = []demoAP{
	{"DogeNet", "02:00:00:00:00:01", -42, 6, dogescan.EncryptionWPA2},
	{"DogeNet-5G", "02:00:00:00:00:02", -55, 36, dogescan.EncryptionWPA2WPA3},
	{"CoffeeShop", "02:00:00:00:00:03", -67, 1, dogescan.EncryptionOpen},
	{"Printer-7F2A", "02:00:00:00:00:04", -71, 11, dogescan.EncryptionWPA},
	{"", "02:00:00:00:00:05", -74, 6, dogescan.EncryptionWPA2},
	{"Corp-Secure", "02:00:00:00:00:06", -63, 44, dogescan.EncryptionWPA2Enterprise},
	{"OldRouter", "02:00:00:00:00:07", -83, 3, dogescan.EncryptionWEP},
	{"Neighbour", "02:00:00:00:00:08", -79, 9, dogescan.EncryptionWPAWPA2},
	{"SmartHome", "02:00:00:00:00:09", -58, 1, dogescan.EncryptionWPA3},
	{"Guest", "02:00:00:00:00:0a", -88, 13, dogescan.EncryptionOpen},
}

/* DemoRadio reports a fixed neighbourhood of fake networks with
 * jittered signal strength. Some access points are reported twice
 * per pass, as real drivers occasionally do.
 */
type DemoRadio struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDemoRadio(seed uint64) *DemoRadio {
	return &DemoRadio{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (t *DemoRadio) Scan(ctx context.Context) ([]dogescan.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]dogescan.ScanResult, 0, len(demoAPs)+2)
	for _, ap := range demoAPs {
		// weak networks drop in and out
		if ap.rssi < -85 && t.rng.IntN(2) == 0 {
			continue
		}
		mac, err := net.ParseMAC(ap.bssid)
		if err != nil {
			return nil, err
		}
		r := dogescan.ScanResult{
			SSID:       ap.ssid,
			BSSID:      mac,
			RSSI:       ap.rssi + t.rng.IntN(7) - 3,
			Channel:    ap.channel,
			Encryption: ap.enc,
			Hidden:     ap.ssid == "",
		}
		out = append(out, r)
		if t.rng.IntN(5) == 0 {
			out = append(out, r)
		}
	}
	return out, nil
}
