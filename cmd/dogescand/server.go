package main

import (
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/daemon"
	dogescan "github.com/dogeorg/dogescan/pkg"
	"github.com/dogeorg/dogescan/pkg/conductor"
	"github.com/dogeorg/dogescan/pkg/gobdb"
	"github.com/dogeorg/dogescan/pkg/system"
	"github.com/dogeorg/dogescan/pkg/system/gpio"
	network_wifi "github.com/dogeorg/dogescan/pkg/system/network/wifi"
	"github.com/dogeorg/dogescan/pkg/web"
	log "github.com/sirupsen/logrus"
)

type server struct {
	config dogescan.ServerConfig
}

func Server(config dogescan.ServerConfig) server {
	return server{config}
}

func (t server) Start() {
	/* ----------------------------------------------------------------------- */
	// Set up our hardware interfaces: the radio, status LED and button

	radio, err := network_wifi.NewRadio(t.config)
	if err != nil {
		log.WithError(err).Fatal("couldn't set up radio")
	}

	scheduler := dogescan.NewScheduler(gpio.NewOutput(t.config.LEDPath))
	systemMonitor := system.NewSystemMonitor()

	var trigger dogescan.Trigger
	var button gpio.Button
	if t.config.ButtonPath != "" {
		button = gpio.NewButton(t.config.ButtonPath)
		trigger = button
	}

	/* ----------------------------------------------------------------------- */
	// Auto scan settings survive restarts, nothing else is persisted

	if err := os.MkdirAll(t.config.DataDir, 0o755); err != nil {
		log.WithError(err).Fatalf("couldn't create data dir %s", t.config.DataDir)
	}
	settings := gobdb.NewGobFile[dogescan.Settings](filepath.Join(t.config.DataDir, "settings.gob"))

	/* ----------------------------------------------------------------------- */
	// Set up Dogescan, the dispatcher everything routes through

	dsx := dogescan.NewDogescan(t.config, radio, scheduler, systemMonitor, trigger, settings)

	/* ----------------------------------------------------------------------- */
	// Setup our external APIs. REST, Websockets

	wsh := web.NewWSRelay(dsx.Changes)
	rest := web.RESTAPI(t.config, dsx, wsh)

	/* ----------------------------------------------------------------------- */
	// Create a conductor to manage all the above services startup/shutdown

	opts := []conductor.Option{conductor.HookSignals()}
	if t.config.Verbose {
		opts = append(opts, conductor.Noisy())
	}
	c := conductor.NewConductor(opts...)
	c.Service("Scheduler", scheduler)
	c.Service("System Monitor", systemMonitor)
	if trigger != nil {
		c.Service("Button", button)
	}
	c.Service("Dogescan", dsx)
	c.Service("WSock Relay", wsh)
	c.Service("REST API", rest)
	done := c.Start()

	select {
	case <-c.Ready():
		log.Infof("dogescand listening on %s:%d", t.config.Bind, t.config.Port)
		if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
			log.WithError(err).Warn("couldn't notify systemd")
		} else if !ok {
			log.Debug("not running under systemd, skipped readiness notification")
		}
	case <-done:
		return
	}

	<-done
	daemon.SdNotify(false, daemon.SdNotifyStopping)
}
