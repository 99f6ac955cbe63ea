package dogescan

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultScanInterval = 5 * time.Second
	MinScanInterval     = time.Second
	LEDInterval         = time.Second
)

// A binary output, ie: the status LED
type Output interface {
	Set(on bool) error
}

// A Trigger emits the time of each confirmed press of
// a manual scan input.
type Trigger interface {
	GetPressChannel() chan time.Time
}

/* Scheduler runs two independent timers:
 *
 * The scan timer is armed and disarmed at runtime and fires into
 * the channel returned by GetFiredChannel. Ticks are coalesced
 * while one is waiting to be consumed. Disarming does not affect a
 * scan that is already running.
 *
 * The LED timer toggles an Output every LEDInterval, purely
 * cosmetic and unrelated to scan state.
 */
type Scheduler struct {
	led         Output
	ledInterval time.Duration
	ctrl        chan time.Duration
	fired       chan time.Time
}

func NewScheduler(led Output) Scheduler {
	return Scheduler{
		led:         led,
		ledInterval: LEDInterval,
		ctrl:        make(chan time.Duration, 8),
		fired:       make(chan time.Time, 1),
	}
}

// Arm (re)starts the scan timer with the given interval
func (t Scheduler) Arm(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	t.ctrl <- interval
}

func (t Scheduler) Disarm() {
	t.ctrl <- 0
}

func (t Scheduler) GetFiredChannel() chan time.Time {
	return t.fired
}

func (t Scheduler) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		done := make(chan struct{})
		exited := make(chan struct{})
		go func() {
			defer close(exited)
			var scan *time.Ticker
			var scanC <-chan time.Time
			led := time.NewTicker(t.ledInterval)
			defer led.Stop()
			ledOn := false

		mainloop:
			for {
				select {
				case <-done:
					break mainloop

				case d := <-t.ctrl:
					if scan != nil {
						scan.Stop()
						scan, scanC = nil, nil
					}
					if d > 0 {
						scan = time.NewTicker(d)
						scanC = scan.C
					}

				case ts := <-scanC:
					select {
					case t.fired <- ts:
					default:
						// previous tick not consumed yet
					}

				case <-led.C:
					ledOn = !ledOn
					if t.led == nil {
						continue
					}
					if err := t.led.Set(ledOn); err != nil {
						log.WithField("component", "scheduler").WithError(err).Debug("couldn't set LED")
					}
				}
			}
			if scan != nil {
				scan.Stop()
			}
		}()

		started <- true
		<-stop
		close(done)
		<-exited
		stopped <- true
	}()
	return nil
}
