package dogescan

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memSettings struct {
	saved []Settings
}

func (m *memSettings) Load() (Settings, error) {
	if len(m.saved) == 0 {
		return Settings{}, errors.New("nothing saved")
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memSettings) Save(s Settings) error {
	m.saved = append(m.saved, s)
	return nil
}

func startDogescan(t *testing.T, radio Radio, settings SettingsStore) (*Dogescan, chan Change) {
	t.Helper()
	d := NewDogescan(ServerConfig{ScanInterval: time.Hour}, radio, NewScheduler(nil), nil, nil, settings)

	started, stopped := make(chan bool), make(chan bool)
	stop := make(chan context.Context)
	if err := d.Run(started, stopped, stop); err != nil {
		t.Fatalf("returned error: %v", err)
	}
	<-started

	changes := make(chan Change, 128)
	go func() {
		for c := range d.Changes {
			changes <- c
		}
	}()

	t.Cleanup(func() {
		stop <- context.Background()
		<-stopped
	})
	return d, changes
}

// waitFor drains changes until one of the given type arrives
func waitFor(t *testing.T, changes chan Change, changeType string) Change {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Type == changeType {
				return c
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", changeType)
		}
	}
}

func do(t *testing.T, d *Dogescan, a Action) (Job, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.Do(ctx, a)
}

func TestScanNowPublishesResult(t *testing.T) {
	d, changes := startDogescan(t, &fakeRadio{results: sampleResults()}, nil)

	j, err := do(t, d, ScanNow{})
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	res, ok := j.Success.(ScanResultUpdate)
	if !ok || res.Count != 2 {
		t.Fatalf("unexpected job result: %#v", j.Success)
	}

	c := waitFor(t, changes, ChangeScanResult)
	if c.ID != j.ID {
		t.Fatalf("change id %q does not match job %q", c.ID, j.ID)
	}
	s := waitFor(t, changes, ChangeStats)
	if s.Update.(StatsUpdate).Stats.TotalScans != 1 {
		t.Fatalf("stats not updated after scan: %+v", s.Update)
	}
}

func TestScanTimerScansWithInternalID(t *testing.T) {
	d, changes := startDogescan(t, &fakeRadio{results: sampleResults()}, nil)
	if _, err := do(t, d, StartAutoScan{Interval: time.Hour}); err != nil {
		t.Fatalf("returned error: %v", err)
	}

	d.Scheduler.GetFiredChannel() <- time.Now()

	c := waitFor(t, changes, ChangeScanResult)
	if c.ID != InternalJobID {
		t.Fatalf("timer driven scan should use the internal id, got %q", c.ID)
	}
}

func TestScanTimerIgnoredWhenAutoScanOff(t *testing.T) {
	radio := &fakeRadio{results: sampleResults(), entered: make(chan struct{}, 1)}
	d, changes := startDogescan(t, radio, nil)

	do(t, d, StartAutoScan{Interval: time.Hour})
	if _, err := do(t, d, StopAutoScan{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}

	// a tick left over from before the disarm
	d.Scheduler.GetFiredChannel() <- time.Now()

	select {
	case <-radio.entered:
		t.Fatalf("timer tick scanned with auto scan off")
	case c := <-waitForType(changes, ChangeScanResult, 300*time.Millisecond):
		t.Fatalf("unexpected scan result %q", c.ID)
	case <-time.After(300 * time.Millisecond):
	}
}

// waitForType delivers the first change of a type seen within d
func waitForType(changes chan Change, changeType string, d time.Duration) chan Change {
	out := make(chan Change, 1)
	go func() {
		timeout := time.After(d)
		for {
			select {
			case c := <-changes:
				if c.Type == changeType {
					out <- c
					return
				}
			case <-timeout:
				return
			}
		}
	}()
	return out
}

func TestScanWhileScanning(t *testing.T) {
	radio := &fakeRadio{
		results: sampleResults(),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	d, changes := startDogescan(t, radio, nil)

	first := d.AddAction(ScanNow{})
	<-radio.entered

	if _, err := do(t, d, ScanNow{}); !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}
	if c := waitFor(t, changes, ChangeError); c.Error != ErrScanInProgress.Error() {
		t.Fatalf("unexpected error change: %+v", c)
	}

	close(radio.release)
	if c := waitFor(t, changes, ChangeScanResult); c.ID != first {
		t.Fatalf("expected result of the first scan, got %q", c.ID)
	}
}

func TestAnalyzeNetwork(t *testing.T) {
	d, _ := startDogescan(t, &fakeRadio{results: sampleResults()}, nil)

	if _, err := do(t, d, AnalyzeNetwork{Index: 0}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange before any scan, got %v", err)
	}
	if _, err := do(t, d, ScanNow{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}

	j, err := do(t, d, AnalyzeNetwork{Index: 1})
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	a := j.Success.(AnalysisUpdate).Result
	if a.Network.SSID != "cafe" || a.SecurityLevel != SecurityNone || a.Band != "5GHz" {
		t.Fatalf("unexpected analysis: %+v", a)
	}
}

func TestSimulatedDeauthCompletes(t *testing.T) {
	d, changes := startDogescan(t, &fakeRadio{results: sampleResults()}, nil)

	if _, err := do(t, d, SimulateDeauth{}); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if _, err := do(t, d, ScanNow{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if _, err := do(t, d, TargetNetwork{Index: 1}); err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if _, err := do(t, d, SimulateDeauth{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}

	c := waitFor(t, changes, ChangeAttackComplete)
	done := c.Update.(AttackCompleteUpdate)
	if done.Target != "cafe" || done.PacketsSent != AttackSteps*PacketsPerStep {
		t.Fatalf("unexpected completion: %+v", done)
	}
	if done.Message != AttackDisclaimer {
		t.Fatalf("completion must carry the disclaimer")
	}
	if got := d.GetStats().PacketsSent; got != AttackSteps*PacketsPerStep {
		t.Fatalf("packets not counted: %d", got)
	}
	if d.AttackState().Running {
		t.Fatalf("simulation still marked running")
	}
}

// collect gathers every change that arrives within d
func collect(changes chan Change, d time.Duration) []Change {
	var got []Change
	timeout := time.After(d)
	for {
		select {
		case c := <-changes:
			got = append(got, c)
		case <-timeout:
			return got
		}
	}
}

func TestSimulatedDeauthEventStream(t *testing.T) {
	d, changes := startDogescan(t, &fakeRadio{results: sampleResults()}, nil)

	do(t, d, ScanNow{})
	do(t, d, TargetNetwork{Index: 0})
	if _, err := do(t, d, SimulateDeauth{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}

	var packets []int
	completions := 0
	for _, c := range collect(changes, AttackSteps*AttackStepInterval+time.Second) {
		switch c.Type {
		case ChangeAttackProgress:
			packets = append(packets, c.Update.(AttackProgress).PacketsSent)
		case ChangeAttackComplete:
			completions++
			if len(packets) != AttackSteps {
				t.Fatalf("completion after %d progress events", len(packets))
			}
		}
	}

	if len(packets) != AttackSteps {
		t.Fatalf("expected %d progress events, got %v", AttackSteps, packets)
	}
	for i, p := range packets {
		if p != (i+1)*PacketsPerStep {
			t.Fatalf("mismatch: got %v, each step should add %d", packets, PacketsPerStep)
		}
	}
	if completions != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions)
	}
}

func TestCancelDeauth(t *testing.T) {
	d, changes := startDogescan(t, &fakeRadio{results: sampleResults()}, nil)

	do(t, d, ScanNow{})
	do(t, d, TargetNetwork{Index: 0})
	if _, err := do(t, d, SimulateDeauth{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if _, err := do(t, d, SimulateDeauth{}); !errors.Is(err, ErrAttackRunning) {
		t.Fatalf("expected ErrAttackRunning, got %v", err)
	}

	j, err := do(t, d, CancelDeauth{})
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if u := j.Success.(AttackStatusUpdate); u.Status != "idle" || u.Attack.Running {
		t.Fatalf("unexpected status: %+v", u)
	}

	// longer than a whole run, nothing may complete
	for _, c := range collect(changes, AttackSteps*AttackStepInterval+time.Second) {
		if c.Type == ChangeAttackComplete {
			t.Fatalf("cancelled simulation completed: %+v", c.Update)
		}
	}
}

func TestAutoScanIsPersisted(t *testing.T) {
	settings := &memSettings{}
	d, _ := startDogescan(t, &fakeRadio{}, settings)

	j, err := do(t, d, StartAutoScan{Interval: 2 * time.Second})
	if err != nil {
		t.Fatalf("returned error: %v", err)
	}
	if s := j.Success.(StatsUpdate).Stats; !s.AutoScan || s.ScanInterval != 2000 {
		t.Fatalf("unexpected stats: %+v", s)
	}

	if _, err := do(t, d, StopAutoScan{}); err != nil {
		t.Fatalf("returned error: %v", err)
	}
	last, _ := settings.Load()
	if last.AutoScan || last.ScanInterval != 2*time.Second {
		t.Fatalf("unexpected saved settings: %+v", last)
	}
}

func TestAutoScanRejectsShortInterval(t *testing.T) {
	settings := &memSettings{}
	d, _ := startDogescan(t, &fakeRadio{}, settings)

	if _, err := do(t, d, StartAutoScan{Interval: time.Millisecond}); !errors.Is(err, ErrBadInterval) {
		t.Fatalf("expected ErrBadInterval, got %v", err)
	}
	if len(settings.saved) != 0 || d.GetStats().AutoScan {
		t.Fatalf("a rejected interval must not change settings")
	}
	if _, err := do(t, d, StartAutoScan{Interval: MinScanInterval}); err != nil {
		t.Fatalf("minimum interval rejected: %v", err)
	}
}

func TestAddActionAfterStop(t *testing.T) {
	d := NewDogescan(ServerConfig{ScanInterval: time.Hour}, &fakeRadio{}, NewScheduler(nil), nil, nil, nil)
	started, stopped := make(chan bool), make(chan bool)
	stop := make(chan context.Context)
	d.Run(started, stopped, stop)
	<-started
	stop <- context.Background()
	<-stopped

	done := make(chan string, 1)
	go func() { done <- d.AddAction(ScanNow{}) }()
	select {
	case id := <-done:
		if id == "" {
			t.Fatalf("expected a job id")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("AddAction blocked after shutdown")
	}
}

func TestSavedSettingsWinOverConfig(t *testing.T) {
	settings := &memSettings{saved: []Settings{{AutoScan: true, ScanInterval: 3 * time.Second}}}
	d := NewDogescan(ServerConfig{ScanInterval: time.Minute}, &fakeRadio{}, NewScheduler(nil), nil, nil, settings)
	if d.autoScan.ScanInterval != 3*time.Second || !d.autoScan.AutoScan {
		t.Fatalf("saved settings ignored: %+v", d.autoScan)
	}
}

func TestUnknownAction(t *testing.T) {
	d, _ := startDogescan(t, &fakeRadio{}, nil)
	if _, err := do(t, d, "dance"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
