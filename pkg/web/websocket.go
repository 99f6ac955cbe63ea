package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"
)

const writeTimeout = 5 * time.Second

// Represents a websocket connection from a client
type WSCONN struct {
	ID     string
	WS     *websocket.Conn
	Stop   chan bool
	once   sync.Once
	sendMu sync.Mutex
}

func NewWSCONN(ws *websocket.Conn) *WSCONN {
	return &WSCONN{ID: uuid.NewString(), WS: ws, Stop: make(chan bool)}
}

func (t *WSCONN) IsClosed() bool {
	select {
	case <-t.Stop:
		return true
	default:
		return false
	}
}

func (t *WSCONN) Close() {
	t.once.Do(func() {
		close(t.Stop)
		t.WS.Close()
	})
}

// Send writes one JSON message, serialised against other writers
func (t *WSCONN) Send(v any) error {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	t.WS.SetWriteDeadline(time.Now().Add(writeTimeout))
	return websocket.JSON.Send(t.WS, v)
}

// Handle incomming websocket connections: push the bootstrap
// payload, then relay client commands to the dispatcher until
// the client goes away.
func (t api) getUpdateSocket(w http.ResponseWriter, r *http.Request) {
	h := websocket.Server{
		Config: websocket.Config{Origin: nil},
		Handler: func(ws *websocket.Conn) {
			conn := NewWSCONN(ws)
			l := log.WithFields(log.Fields{"component": "websocket", "client": conn.ID})
			l.Debug("client connected")

			defer conn.Close()

			// bootstrap goes out before the relay can broadcast to us
			if err := conn.Send(t.bootstrap()); err != nil {
				l.WithError(err).Info("failed to send initial payload")
				return
			}
			if err := t.ws.AddSock(conn); err != nil {
				l.WithError(err).Info("relay not accepting connections")
				return
			}

			for {
				var raw []byte
				if err := websocket.Message.Receive(ws, &raw); err != nil {
					l.WithError(err).Debug("client disconnected")
					return
				}
				a, err := ParseCommand(raw)
				if err != nil {
					// malformed and unknown commands are dropped
					l.WithError(err).Info("ignoring command")
					continue
				}
				id := t.dbx.AddAction(a)
				l.WithField("job", id).Debugf("queued %T", a)
			}
		},
	}
	h.ServeHTTP(w, r)
}
