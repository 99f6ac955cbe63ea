package dogescan

import (
	"bytes"
	"encoding/json"
	"time"
)

// A Job is created when an Action is recieved by the system.
// Jobs are passed through the Dogescan dispatcher and result in
// a Change being sent to clients via websockets.
type Job struct {
	A       Action
	ID      string
	Err     error
	Success any
	Start   time.Time
	reply   chan Job // nilable, set by Dogescan.Do
}

func (j Job) internal() bool {
	return j.ID == InternalJobID
}

const InternalJobID = "internal"

// Change types as seen by websocket clients
const (
	ChangeBootstrap      = "bootstrap"
	ChangeScanResult     = "scan_result"
	ChangeStats          = "stats"
	ChangeAnalysis       = "analysis"
	ChangeAttackStatus   = "attack_status"
	ChangeAttackProgress = "attack_progress"
	ChangeAttackComplete = "attack_complete"
	ChangeExportData     = "export_data"
	ChangeError          = "error"
)

/* A Change can be the result of a Job (same ID) or represent an
 * internal change such as a timer driven scan or a stats refresh.
 *
 * On the wire a Change is flattened, the fields of its Update sit
 * next to "type":
 *
 *   {"type":"scan_result","id":"...","networks":[...]}
 */
type Change struct {
	ID     string
	Error  string
	Type   string
	Update Update
}

func (c Change) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}

	if c.Update != nil {
		b, err := json.Marshal(c.Update)
		if err != nil {
			return nil, err
		}
		if bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
			if err := json.Unmarshal(b, &out); err != nil {
				return nil, err
			}
		} else {
			out["update"] = b
		}
	}

	set := func(k, v string) {
		b, _ := json.Marshal(v)
		out[k] = b
	}
	set("type", c.Type)
	if c.ID != "" {
		set("id", c.ID)
	}
	if c.Error != "" {
		set("error", c.Error)
	}
	return json.Marshal(out)
}

/* Actions are passed to the dispatcher via AddAction or Do and
 * represent things clients (or timers) want done.
 */
type Action any

// Arm the recurring scan timer
type StartAutoScan struct {
	Interval time.Duration
}

// Disarm the recurring scan timer, an in-flight scan still completes
type StopAutoScan struct{}

type ScanNow struct{}

type GetStats struct{}

type GetNetworks struct{}

type AnalyzeNetwork struct {
	Index int
}

// Select the network a simulated attack is aimed at
type TargetNetwork struct {
	Index int
}

type SimulateDeauth struct{}

type CancelDeauth struct{}

type ExportData struct{}

// Raised by the Scheduler's scan timer
type ScanTimerFired struct {
	At time.Time
}

// Raised by a debounced press of the hardware button
type ManualTrigger struct {
	At time.Time
}

/* Updates are responses to Actions or internal state changes,
 * wrapped in a Change and sent to clients.
 *
 * Updates need to be json-marshalable types
 */
type Update any

type ScanResultUpdate struct {
	Networks  []NetworkRecord `json:"networks"`
	Count     int             `json:"count"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewScanResultUpdate(snap ScanSnapshot) ScanResultUpdate {
	networks := snap.Networks
	if networks == nil {
		networks = []NetworkRecord{}
	}
	return ScanResultUpdate{Networks: networks, Count: len(networks), Timestamp: snap.Timestamp}
}

type StatsUpdate struct {
	Stats SystemStats `json:"stats"`
}

type AnalysisUpdate struct {
	Result NetworkAnalysis `json:"result"`
}

type AttackStatusUpdate struct {
	Status string                `json:"status"`
	Attack AttackSimulationState `json:"attack"`
}

type AttackCompleteUpdate struct {
	Target      string `json:"target"`
	PacketsSent int    `json:"packetsSent"`
	Elapsed     int64  `json:"elapsed"`
	Message     string `json:"message"`
}

type ExportUpdate struct {
	CSV string `json:"csv"`
}

type BootstrapUpdate struct {
	Networks []NetworkRecord       `json:"networks"`
	Stats    SystemStats           `json:"stats"`
	Attack   AttackSimulationState `json:"attack"`
}
