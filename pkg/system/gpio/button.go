package gpio

import (
	"bytes"
	"context"
	"os"
	"time"

	dogescan "github.com/dogeorg/dogescan/pkg"
	log "github.com/sirupsen/logrus"
)

const (
	PollInterval     = 20 * time.Millisecond
	DebounceInterval = 50 * time.Millisecond
)

var _ dogescan.Trigger = Button{}

/* Button watches an active-low digital input (pulled up, reads "0"
 * while pressed) by polling its sysfs value file.
 *
 * A falling edge is confirmed by waiting DebounceInterval and
 * reading again. Confirmed presses are delivered on the press
 * channel, presses are dropped while one is still pending.
 */
type Button struct {
	read     func() (bool, error)
	poll     time.Duration
	debounce time.Duration
	presses  chan time.Time
}

func NewButton(path string) Button {
	return Button{
		read:     sysfsReader(path),
		poll:     PollInterval,
		debounce: DebounceInterval,
		presses:  make(chan time.Time, 1),
	}
}

func (t Button) GetPressChannel() chan time.Time {
	return t.presses
}

func (t Button) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		exited := make(chan struct{})
		go func() {
			defer close(exited)
			t.watch(ctx)
		}()
		started <- true
		<-stop
		cancel()
		<-exited
		stopped <- true
	}()
	return nil
}

func (t Button) watch(ctx context.Context) {
	ticker := time.NewTicker(t.poll)
	defer ticker.Stop()
	wasPressed := false
	failing := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pressed, err := t.read()
		if err != nil {
			if !failing {
				log.WithField("component", "button").WithError(err).Warn("couldn't read button")
				failing = true
			}
			continue
		}
		failing = false

		if pressed && !wasPressed {
			select {
			case <-ctx.Done():
				return
			case <-time.After(t.debounce):
			}
			pressed, err = t.read()
			if err == nil && pressed {
				select {
				case t.presses <- time.Now():
				default:
				}
			}
		}
		wasPressed = pressed
	}
}

func sysfsReader(path string) func() (bool, error) {
	return func() (bool, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return false, err
		}
		return bytes.Equal(bytes.TrimSpace(b), []byte("0")), nil
	}
}
