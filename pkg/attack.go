package dogescan

import "time"

const (
	AttackSteps        = 10
	AttackStepInterval = 500 * time.Millisecond
	PacketsPerStep     = 10
)

const AttackDisclaimer = "SIMULATION ONLY: no deauthentication frames were transmitted. " +
	"This demonstration is for education. Never test networks you are not authorised to assess."

type AttackSimulationState struct {
	Running     bool      `json:"running"`
	StartedAt   time.Time `json:"startedAt"`
	TargetIndex int       `json:"targetIndex"`
	TargetName  string    `json:"targetName"`
	PacketsSent int       `json:"packetsSent"`
	Step        int       `json:"step"`
}

type AttackProgress struct {
	Target      string `json:"target"`
	PacketsSent int    `json:"packetsSent"`
	Elapsed     int64  `json:"elapsed"` // ms
	Step        int    `json:"step"`
	Total       int    `json:"total"`
}

/* AttackSimulator is a scripted counter, it never touches the radio.
 *
 * It is stepped by the dispatcher once per AttackStepInterval rather
 * than sleeping, so the dispatcher stays responsive while a run is in
 * progress and a run can be cancelled between steps.
 *
 * Not safe for concurrent use, the dispatcher goroutine owns it.
 */
type AttackSimulator struct {
	state AttackSimulationState
}

func NewAttackSimulator() *AttackSimulator {
	return &AttackSimulator{state: AttackSimulationState{TargetIndex: -1}}
}

func (t *AttackSimulator) State() AttackSimulationState {
	return t.state
}

func (t *AttackSimulator) Running() bool {
	return t.state.Running
}

// Target selects the network the next run is aimed at.
func (t *AttackSimulator) Target(index int, name string) error {
	if t.state.Running {
		return ErrAttackRunning
	}
	t.state.TargetIndex = index
	t.state.TargetName = name
	return nil
}

func (t *AttackSimulator) Start(now time.Time) error {
	if t.state.Running {
		return ErrAttackRunning
	}
	if t.state.TargetIndex < 0 {
		return ErrNoTarget
	}
	t.state.Running = true
	t.state.StartedAt = now
	t.state.PacketsSent = 0
	t.state.Step = 0
	return nil
}

// Step advances a running simulation by one tick. done is true once the
// final step has been taken, or if nothing was running.
func (t *AttackSimulator) Step(now time.Time) (p AttackProgress, done bool) {
	if !t.state.Running {
		return AttackProgress{}, true
	}
	t.state.Step++
	t.state.PacketsSent += PacketsPerStep

	p = AttackProgress{
		Target:      t.state.TargetName,
		PacketsSent: t.state.PacketsSent,
		Elapsed:     now.Sub(t.state.StartedAt).Milliseconds(),
		Step:        t.state.Step,
		Total:       AttackSteps,
	}

	if t.state.Step >= AttackSteps {
		t.state.Running = false
		return p, true
	}
	return p, false
}

// Cancel stops a running simulation, reporting whether one was running.
func (t *AttackSimulator) Cancel() bool {
	if !t.state.Running {
		return false
	}
	t.state.Running = false
	return true
}
