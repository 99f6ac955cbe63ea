package web

import (
	"context"
	"fmt"
	"net/http"

	dogescan "github.com/dogeorg/dogescan/pkg"
	"github.com/dogeorg/dogescan/pkg/conductor"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func RESTAPI(
	config dogescan.ServerConfig,
	dbx *dogescan.Dogescan,
	ws *WSRelay,
) conductor.Service {
	a := api{
		mux:    http.NewServeMux(),
		config: config,
		dbx:    dbx,
		ws:     ws,
	}

	routes := map[string]http.HandlerFunc{
		"GET /api":                  a.getAPI,
		"GET /api/networks/{index}": a.getNetworkAnalysis,
		"PUT /api/autoscan":         a.setAutoScan,
		"GET /api/version":          a.getVersion,
		"GET /ws":                   a.getUpdateSocket,
		"GET /":                     a.dashboard(),
	}

	for p, h := range routes {
		a.mux.HandleFunc(p, h)
	}
	log.WithField("component", "api").Debugf("Loaded %d API routes", len(routes))

	return a
}

type api struct {
	dbx    *dogescan.Dogescan
	mux    *http.ServeMux
	config dogescan.ServerConfig
	ws     *WSRelay
}

func (t api) Handler() http.Handler {
	return cors.AllowAll().Handler(t.mux)
}

func (t api) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		srv := &http.Server{Addr: fmt.Sprintf("%s:%d", t.config.Bind, t.config.Port), Handler: t.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				log.Fatalf("HTTP server public ListenAndServe: %v", err)
			}
		}()

		started <- true
		ctx := <-stop
		srv.Shutdown(ctx)
		stopped <- true
	}()
	return nil
}

func (t api) bootstrap() dogescan.Change {
	// unsolicited, so no job id
	return dogescan.Change{Type: dogescan.ChangeBootstrap, Update: t.dbx.Bootstrap()}
}
