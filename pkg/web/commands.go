package web

import (
	"encoding/json"
	"fmt"
	"time"

	dogescan "github.com/dogeorg/dogescan/pkg"
)

// ClientCommand is the JSON a dashboard sends over the websocket, ie:
//
//	{"action":"analyze_network","index":3}
type ClientCommand struct {
	Action   string `json:"action"`
	Index    *int   `json:"index,omitempty"`
	Interval int    `json:"interval,omitempty"` // ms
}

// ParseCommand turns a websocket message into a dispatcher Action.
func ParseCommand(raw []byte) (dogescan.Action, error) {
	var c ClientCommand
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("malformed command: %w", err)
	}

	index := func() (int, error) {
		if c.Index == nil {
			return 0, fmt.Errorf("%s requires an index", c.Action)
		}
		return *c.Index, nil
	}

	switch c.Action {
	case "start_scan":
		return dogescan.StartAutoScan{Interval: time.Duration(c.Interval) * time.Millisecond}, nil
	case "stop_scan":
		return dogescan.StopAutoScan{}, nil
	case "scan_now":
		return dogescan.ScanNow{}, nil
	case "get_stats":
		return dogescan.GetStats{}, nil
	case "get_networks":
		return dogescan.GetNetworks{}, nil
	case "analyze_network":
		i, err := index()
		if err != nil {
			return nil, err
		}
		return dogescan.AnalyzeNetwork{Index: i}, nil
	case "target_network":
		i, err := index()
		if err != nil {
			return nil, err
		}
		return dogescan.TargetNetwork{Index: i}, nil
	case "simulate_deauth":
		return dogescan.SimulateDeauth{}, nil
	case "cancel_deauth":
		return dogescan.CancelDeauth{}, nil
	case "export_data":
		return dogescan.ExportData{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", dogescan.ErrUnknownAction, c.Action)
	}
}
