package conductor

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

/* A Service is anything with a lifecycle managed by the Conductor.
 *
 * Run must return promptly, start its work in a goroutine, send on
 * 'started' once it is ready, and when a context arrives on 'stop'
 * shut down within that context's deadline and send on 'stopped'.
 */
type Service interface {
	Run(started, stopped chan bool, stop chan context.Context) error
}

type Option func(*Conductor)

// HookSignals stops all services on SIGINT or SIGTERM
func HookSignals() Option {
	return func(c *Conductor) {
		c.hookSignals = true
	}
}

// Noisy logs every service start and stop
func Noisy() Option {
	return func(c *Conductor) {
		c.noisy = true
	}
}

func StopTimeout(d time.Duration) Option {
	return func(c *Conductor) {
		c.stopTimeout = d
	}
}

type service struct {
	name    string
	svc     Service
	started chan bool
	stopped chan bool
	stop    chan context.Context
}

type Conductor struct {
	services    []*service
	hookSignals bool
	noisy       bool
	stopTimeout time.Duration
	halt        chan struct{}
	haltOnce    sync.Once
	ready       chan struct{}
}

func NewConductor(opts ...Option) *Conductor {
	c := &Conductor{
		stopTimeout: 10 * time.Second,
		halt:        make(chan struct{}),
		ready:       make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Service registers a service, services start in registration order.
func (c *Conductor) Service(name string, s Service) {
	c.services = append(c.services, &service{
		name:    name,
		svc:     s,
		started: make(chan bool),
		stopped: make(chan bool),
		stop:    make(chan context.Context, 1),
	})
}

// Stop asks a started Conductor to shut everything down.
func (c *Conductor) Stop() {
	c.haltOnce.Do(func() { close(c.halt) })
}

// Ready is closed once every service has reported started.
func (c *Conductor) Ready() <-chan struct{} {
	return c.ready
}

// Start runs all services and returns a channel that receives once
// every service has stopped.
func (c *Conductor) Start() chan bool {
	done := make(chan bool, 1)

	go func() {
		var sigs chan os.Signal
		if c.hookSignals {
			sigs = make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)
		}

		running := []*service{}
		for _, s := range c.services {
			if err := s.svc.Run(s.started, s.stopped, s.stop); err != nil {
				log.WithError(err).Errorf("service %q failed to start", s.name)
				c.Stop()
				break
			}
			<-s.started
			running = append(running, s)
			if c.noisy {
				log.Infof("started %s", s.name)
			}
		}
		if len(running) == len(c.services) {
			close(c.ready)
		}

		select {
		case <-c.halt:
		case sig := <-sigs:
			log.Infof("received %s, shutting down", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.stopTimeout)
		defer cancel()

		var wg conc.WaitGroup
		for _, s := range running {
			s := s
			wg.Go(func() {
				s.stop <- ctx
				select {
				case <-s.stopped:
					if c.noisy {
						log.Infof("stopped %s", s.name)
					}
				case <-ctx.Done():
					log.Warnf("service %s did not stop in time", s.name)
				}
			})
		}
		wg.Wait()
		done <- true
	}()

	return done
}
