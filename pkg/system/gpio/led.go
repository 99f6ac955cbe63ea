package gpio

import (
	"fmt"
	"os"

	dogescan "github.com/dogeorg/dogescan/pkg"
)

var _ dogescan.Output = SysfsOutput{}

// SysfsOutput drives a binary output through a sysfs attribute, ie:
// /sys/class/leds/led0/brightness or /sys/class/gpio/gpio17/value
type SysfsOutput struct {
	Path string
}

func (t SysfsOutput) Set(on bool) error {
	v := []byte("0")
	if on {
		v = []byte("1")
	}
	if err := os.WriteFile(t.Path, v, 0); err != nil {
		return fmt.Errorf("write %s: %w", t.Path, err)
	}
	return nil
}

// NewOutput returns nil when no path is configured, the
// Scheduler then only keeps time.
func NewOutput(path string) dogescan.Output {
	if path == "" {
		return nil
	}
	return SysfsOutput{Path: path}
}
