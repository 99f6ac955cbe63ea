package web

import (
	"context"
	"errors"
	"time"

	dogescan "github.com/dogeorg/dogescan/pkg"
	log "github.com/sirupsen/logrus"
)

var errRelayStopped = errors.New("websocket relay stopped")

type WSRelay struct {
	socks   []*WSCONN
	relay   chan dogescan.Change
	newWs   chan *WSCONN
	stopped chan struct{}
}

func NewWSRelay(relay chan dogescan.Change) *WSRelay {
	return &WSRelay{
		socks:   []*WSCONN{},        // all current connections
		relay:   relay,              // recieve Change messages from Dogescan to broadcast
		newWs:   make(chan *WSCONN), // recieve new WSCONNs
		stopped: make(chan struct{}),
	}
}

func (t *WSRelay) Run(started, stopped chan bool, stop chan context.Context) error {
	cleanupTime := 10 * time.Second
	go func() {
		done := make(chan struct{})
		exited := make(chan struct{})
		go func() {
			defer close(exited)
			cleanup := time.NewTimer(cleanupTime)
			defer cleanup.Stop()
		mainloop:
			for {
				select {
				case <-done:
					break mainloop
				case ws := <-t.newWs:
					t.addSock(ws)
				case v := <-t.relay:
					t.broadcast(v)
				case <-cleanup.C:
					t.cleanupSocks()
					cleanup.Reset(cleanupTime)
				}
			}
		}()

		started <- true
		<-stop
		close(t.stopped)
		close(done)
		<-exited
		for _, sock := range t.socks {
			sock.Close()
		}
		stopped <- true
	}()
	return nil
}

// AddSock hands a new connection to the relay loop
func (t *WSRelay) AddSock(ws *WSCONN) error {
	select {
	case t.newWs <- ws:
		return nil
	case <-t.stopped:
		return errRelayStopped
	}
}

func (t *WSRelay) cleanupSocks() {
	remaining := []*WSCONN{}
	for _, s := range t.socks {
		if s.IsClosed() {
			continue
		}
		remaining = append(remaining, s)
	}
	t.socks = remaining
}

func (t *WSRelay) broadcast(v any) {
	for _, ws := range t.socks {
		if ws.IsClosed() {
			continue
		}
		if err := ws.Send(v); err != nil {
			log.WithFields(log.Fields{"component": "websocket", "client": ws.ID}).WithError(err).Debug("dropping client")
			ws.Close()
		}
	}
}

func (t *WSRelay) addSock(ws *WSCONN) {
	t.socks = append(t.socks, ws)
}
