package system

import (
	"context"
	"time"

	dogescan "github.com/dogeorg/dogescan/pkg"
	"github.com/shirou/gopsutil/v4/mem"
	log "github.com/sirupsen/logrus"
)

const MonitorInterval = 10 * time.Second

var _ dogescan.SystemMonitor = SystemMonitor{}

/* SystemMonitor
 *
 * SystemMonitor samples free memory every MonitorInterval and
 * issues a dogescan.SystemReading on its 'readings' channel. The
 * dispatcher folds these into SystemStats and pushes a stats update
 * to clients, which doubles as the dashboard's stats poll.
 *
 * Readings are dropped if the previous one hasn't been consumed.
 */
type SystemMonitor struct {
	interval time.Duration
	readings chan dogescan.SystemReading
	sample   func(ctx context.Context) (dogescan.SystemReading, error)
}

func NewSystemMonitor() SystemMonitor {
	return SystemMonitor{
		interval: MonitorInterval,
		readings: make(chan dogescan.SystemReading, 1),
		sample:   sampleMemory,
	}
}

func (t SystemMonitor) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		exited := make(chan struct{})
		go func() {
			defer close(exited)
			timer := time.NewTimer(0)
			defer timer.Stop()
		mainloop:
			for {
				select {
				case <-ctx.Done():
					break mainloop
				case <-timer.C:
					r, err := t.sample(ctx)
					if err != nil {
						log.WithField("component", "monitor").WithError(err).Warn("error reading memory stats")
					} else {
						select {
						case t.readings <- r:
						default:
							log.WithField("component", "monitor").Debug("couldn't write to output channel")
						}
					}
					timer.Reset(t.interval)
				}
			}
		}()
		started <- true
		<-stop
		cancel()
		<-exited
		stopped <- true
	}()
	return nil
}

func (t SystemMonitor) GetReadingChannel() chan dogescan.SystemReading {
	return t.readings
}

func sampleMemory(ctx context.Context) (dogescan.SystemReading, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return dogescan.SystemReading{}, err
	}
	return dogescan.SystemReading{FreeMemory: vm.Available}, nil
}
