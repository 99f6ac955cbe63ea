package dogescan

import (
	"errors"
	"fmt"
	"time"
)

type ServerConfig struct {
	DataDir      string
	Bind         string
	Port         int
	Interface    string
	Radio        string
	ScanInterval time.Duration
	AutoScan     bool
	LEDPath      string
	ButtonPath   string
	UiDir        string
	Verbose      bool
	LogJSON      bool
}

const (
	RadioIWList = "iwlist"
	RadioDemo   = "demo"
)

func (c ServerConfig) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.ScanInterval < MinScanInterval {
		errs = append(errs, fmt.Errorf("scan interval %s is shorter than %s", c.ScanInterval, MinScanInterval))
	}
	if c.Radio != RadioIWList && c.Radio != RadioDemo {
		errs = append(errs, fmt.Errorf("unknown radio %q (want %s or %s)", c.Radio, RadioIWList, RadioDemo))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir cannot be empty"))
	}

	return errors.Join(errs...)
}
