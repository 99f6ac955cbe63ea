/*
Dogescan internal architecture:

 Actions are instructions from a client to do something and come in
 via the REST API or the Websocket. These are submitted to
 Dogescan.AddAction (or Do, which waits for the outcome) and become
 Jobs on the job channel.

 Timers, the hardware button and the system monitor feed the same
 run loop through their own channels, so everything that mutates
 state is routed by one goroutine.

 Scans run off the loop (they block on the radio) and report back
 on the scan channel. Completed Jobs and internal events are sent
 to the Changes channel for the WSRelay to broadcast.

                          ┌──────────────────────┐
 REST API ───┐            │      Dogescan{}      │
             │  Actions   │                      │   Changes
 WebSocket ──┼──────────► │   run loop ─► Scan   │ ─────────► WSRelay
             │            │      ▲      Engine   │
 Scheduler ──┤  ticks     │      │       │       │
 Button ─────┤            │      └───────┘       │
 Monitor ────┘            │   AttackSimulator    │
                          └──────────────────────┘
*/

package dogescan

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	log "github.com/sirupsen/logrus"
)

type Dogescan struct {
	Store     *NetworkStore
	Stats     *StatsTracker
	Engine    *ScanEngine
	Attack    *AttackSimulator
	Scheduler Scheduler
	monitor   SystemMonitor
	trigger   Trigger
	settings  SettingsStore
	config    ServerConfig

	jobs     chan Job
	scanDone chan Job
	Changes  chan Change

	stopping    chan struct{}
	attackTimer *time.Timer
	attackMu    sync.RWMutex
	attackState AttackSimulationState
	autoScan    Settings
	now         func() time.Time
	log         *log.Entry
}

func NewDogescan(
	config ServerConfig,
	radio Radio,
	scheduler Scheduler,
	monitor SystemMonitor,
	trigger Trigger,
	settings SettingsStore,
) *Dogescan {
	store := NewNetworkStore()
	stats := NewStatsTracker(time.Now())

	attackTimer := time.NewTimer(AttackStepInterval)
	attackTimer.Stop()

	t := &Dogescan{
		Store:       store,
		Stats:       stats,
		Engine:      NewScanEngine(radio, store, stats),
		Attack:      NewAttackSimulator(),
		Scheduler:   scheduler,
		monitor:     monitor,
		trigger:     trigger,
		settings:    settings,
		config:      config,
		jobs:        make(chan Job),
		scanDone:    make(chan Job, 4),
		Changes:     make(chan Change),
		stopping:    make(chan struct{}),
		attackTimer: attackTimer,
		now:         time.Now,
		log:         log.WithField("component", "dogescan"),
	}
	t.attackState = t.Attack.State()

	t.autoScan = Settings{AutoScan: config.AutoScan, ScanInterval: config.ScanInterval}
	if settings != nil {
		saved, err := settings.Load()
		if err == nil {
			t.autoScan = saved
		} else {
			t.log.WithError(err).Debug("no saved settings, using config")
		}
	}
	if t.autoScan.ScanInterval <= 0 {
		t.autoScan.ScanInterval = DefaultScanInterval
	}
	return t
}

// Main Dogescan goroutine, routes jobs, timer ticks, button presses
// and system readings, and reports the outcome via the Changes channel.
func (t *Dogescan) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		exited := make(chan struct{})

		var pressed chan time.Time
		if t.trigger != nil {
			pressed = t.trigger.GetPressChannel()
		}
		var readings chan SystemReading
		if t.monitor != nil {
			readings = t.monitor.GetReadingChannel()
		}

		go func() {
			defer close(exited)
			defer t.attackTimer.Stop()

			if t.autoScan.AutoScan {
				t.Scheduler.Arm(t.autoScan.ScanInterval)
			}
			t.Stats.SetAutoScan(t.autoScan.AutoScan, t.autoScan.ScanInterval)

		mainloop:
			for {
				select {
				case <-ctx.Done():
					break mainloop

				// Hand incomming jobs to the Job Dispatcher
				case j := <-t.jobs:
					t.jobDispatcher(ctx, j)

				// A scan started by the dispatcher has finished
				case j := <-t.scanDone:
					t.finishScan(j)

				case ts := <-t.Scheduler.GetFiredChannel():
					t.jobDispatcher(ctx, Job{A: ScanTimerFired{At: ts}, ID: InternalJobID, Start: ts})

				case ts := <-pressed:
					t.jobDispatcher(ctx, Job{A: ManualTrigger{At: ts}, ID: InternalJobID, Start: ts})

				case r := <-readings:
					t.Stats.UpdateReading(r)
					t.emit(Change{ID: InternalJobID, Type: ChangeStats, Update: StatsUpdate{t.Stats.Get(t.now())}})

				case <-t.attackTimer.C:
					t.stepAttack()
				}
			}
		}()

		started <- true
		<-stop
		cancel()
		close(t.stopping)
		<-exited
		stopped <- true
	}()
	return nil
}

// Add an Action to the Action queue, returns a unique ID
// which can be used to match the outcome in the Changes
func (t *Dogescan) AddAction(a Action) string {
	id := newJobID()
	select {
	case t.jobs <- Job{A: a, ID: id, Start: t.now()}:
	case <-t.stopping:
		t.log.WithField("job", id).Debugf("shutting down, dropped %T", a)
	}
	return id
}

// Do submits an Action and waits for its Job to complete.
// The Job's error, if any, is also returned.
func (t *Dogescan) Do(ctx context.Context, a Action) (Job, error) {
	j := Job{A: a, ID: newJobID(), Start: t.now(), reply: make(chan Job, 1)}
	select {
	case t.jobs <- j:
	case <-ctx.Done():
		return j, ctx.Err()
	}
	select {
	case done := <-j.reply:
		return done, done.Err
	case <-ctx.Done():
		return j, ctx.Err()
	}
}

func newJobID() string {
	b := securecookie.GenerateRandomKey(16)
	if b == nil {
		log.Error("Entropic Failure, add more Overminds.")
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func (t *Dogescan) Snapshot() ScanSnapshot {
	return t.Store.Snapshot()
}

func (t *Dogescan) GetStats() SystemStats {
	return t.Stats.Get(t.now())
}

// AttackState is the last state published by the dispatcher,
// safe to call from any goroutine.
func (t *Dogescan) AttackState() AttackSimulationState {
	t.attackMu.RLock()
	defer t.attackMu.RUnlock()
	return t.attackState
}

func (t *Dogescan) ExportCSV() (string, error) {
	return ExportCSV(t.Store.Snapshot())
}

func (t *Dogescan) Bootstrap() BootstrapUpdate {
	return BootstrapUpdate{
		Networks: NewScanResultUpdate(t.Store.Snapshot()).Networks,
		Stats:    t.GetStats(),
		Attack:   t.AttackState(),
	}
}

/* jobDispatcher handles any incomming Jobs based on their
 * Action type. It runs on the dispatcher goroutine only.
 */
func (t *Dogescan) jobDispatcher(ctx context.Context, j Job) {
	t.log.WithField("job", j.ID).Debugf("dispatch %T", j.A)

	switch a := j.A.(type) {

	// Scan triggers, all compete for the same guard
	case ScanNow, ManualTrigger:
		t.startScan(ctx, j)

	case ScanTimerFired:
		// a tick can already be queued when the timer is disarmed
		if !t.autoScan.AutoScan {
			t.log.Debug("auto scan off, ignoring timer tick")
			return
		}
		t.startScan(ctx, j)

	case StartAutoScan:
		interval := a.Interval
		if interval <= 0 {
			interval = t.autoScan.ScanInterval
		}
		if interval < MinScanInterval {
			t.fail(j, fmt.Errorf("%w: %s is below %s", ErrBadInterval, interval, MinScanInterval))
			return
		}
		t.setAutoScan(Settings{AutoScan: true, ScanInterval: interval})
		t.Scheduler.Arm(interval)
		t.finish(j, ChangeStats, StatsUpdate{t.GetStats()})

	case StopAutoScan:
		t.setAutoScan(Settings{AutoScan: false, ScanInterval: t.autoScan.ScanInterval})
		t.Scheduler.Disarm()
		t.finish(j, ChangeStats, StatsUpdate{t.GetStats()})

	case GetStats:
		t.finish(j, ChangeStats, StatsUpdate{t.GetStats()})

	case GetNetworks:
		t.finish(j, ChangeScanResult, NewScanResultUpdate(t.Store.Snapshot()))

	case AnalyzeNetwork:
		n, err := t.Store.Get(a.Index)
		if err != nil {
			t.fail(j, err)
			return
		}
		t.finish(j, ChangeAnalysis, AnalysisUpdate{Analyze(a.Index, n)})

	case TargetNetwork:
		n, err := t.Store.Get(a.Index)
		if err != nil {
			t.fail(j, err)
			return
		}
		if err := t.Attack.Target(a.Index, n.SSID); err != nil {
			t.fail(j, err)
			return
		}
		t.publishAttack()
		t.finish(j, ChangeAttackStatus, AttackStatusUpdate{"targeted", t.Attack.State()})

	case SimulateDeauth:
		if err := t.Attack.Start(t.now()); err != nil {
			t.fail(j, err)
			return
		}
		t.attackTimer.Reset(AttackStepInterval)
		t.publishAttack()
		t.finish(j, ChangeAttackStatus, AttackStatusUpdate{"running", t.Attack.State()})

	case CancelDeauth:
		if t.Attack.Cancel() {
			t.attackTimer.Stop()
		}
		t.publishAttack()
		t.finish(j, ChangeAttackStatus, AttackStatusUpdate{"idle", t.Attack.State()})

	case ExportData:
		csv, err := t.ExportCSV()
		if err != nil {
			t.fail(j, err)
			return
		}
		t.finish(j, ChangeExportData, ExportUpdate{csv})

	default:
		t.fail(j, fmt.Errorf("%w: %T", ErrUnknownAction, a))
	}
}

// startScan runs the ScanEngine off the dispatcher goroutine, the
// outcome comes back on scanDone.
func (t *Dogescan) startScan(ctx context.Context, j Job) {
	if t.Engine.Scanning() {
		t.fail(j, ErrScanInProgress)
		return
	}
	go func() {
		snap, err := t.Engine.RunScan(ctx)
		j.Err = err
		if err == nil {
			j.Success = snap
		}
		select {
		case t.scanDone <- j:
		case <-ctx.Done():
		}
	}()
}

func (t *Dogescan) finishScan(j Job) {
	if j.Err != nil {
		t.fail(j, j.Err)
		return
	}
	snap, _ := j.Success.(ScanSnapshot)
	t.finish(j, ChangeScanResult, NewScanResultUpdate(snap))
	t.emit(Change{ID: InternalJobID, Type: ChangeStats, Update: StatsUpdate{t.GetStats()}})
}

func (t *Dogescan) stepAttack() {
	p, done := t.Attack.Step(t.now())
	if p.Step > 0 {
		t.Stats.AddPackets(PacketsPerStep)
		t.emit(Change{ID: InternalJobID, Type: ChangeAttackProgress, Update: p})
	}
	t.publishAttack()

	if !done {
		t.attackTimer.Reset(AttackStepInterval)
		return
	}

	if p.Step > 0 {
		t.emit(Change{ID: InternalJobID, Type: ChangeAttackComplete, Update: AttackCompleteUpdate{
			Target:      p.Target,
			PacketsSent: p.PacketsSent,
			Elapsed:     p.Elapsed,
			Message:     AttackDisclaimer,
		}})
	}
}

func (t *Dogescan) setAutoScan(s Settings) {
	t.autoScan = s
	t.Stats.SetAutoScan(s.AutoScan, s.ScanInterval)
	if t.settings == nil {
		return
	}
	if err := t.settings.Save(s); err != nil {
		t.log.WithError(err).Warn("couldn't persist settings")
	}
}

func (t *Dogescan) publishAttack() {
	t.attackMu.Lock()
	t.attackState = t.Attack.State()
	t.attackMu.Unlock()
}

// helper to report a completed job back to the client
func (t *Dogescan) finish(j Job, changeType string, u Update) {
	j.Success = u
	t.emit(Change{ID: j.ID, Type: changeType, Update: u})
	t.reply(j)
}

// helper to report a failed job, internal jobs are only logged
func (t *Dogescan) fail(j Job, err error) {
	j.Err = err
	l := t.log.WithField("job", j.ID).WithError(err)
	if j.internal() {
		l.Debugf("%T not completed", j.A)
	} else {
		l.Infof("%T failed", j.A)
		t.emit(Change{ID: j.ID, Type: ChangeError, Error: err.Error()})
	}
	t.reply(j)
}

func (t *Dogescan) reply(j Job) {
	if j.reply != nil {
		j.reply <- j
	}
}

func (t *Dogescan) emit(c Change) {
	select {
	case t.Changes <- c:
	case <-t.stopping:
	}
}
