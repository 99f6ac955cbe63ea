package network_wifi

import (
	"errors"
	"fmt"

	dogescan "github.com/dogeorg/dogescan/pkg"
	"github.com/mdlayher/wifi"
	log "github.com/sirupsen/logrus"
)

// NewRadio picks the Radio described by the server config. An empty
// interface name is resolved to the first wireless station interface.
func NewRadio(config dogescan.ServerConfig) (dogescan.Radio, error) {
	switch config.Radio {
	case dogescan.RadioDemo:
		return NewDemoRadio(1), nil

	case dogescan.RadioIWList:
		iface := config.Interface
		if iface == "" {
			found, err := DefaultInterface()
			if err != nil {
				return nil, err
			}
			iface = found
		}
		log.WithField("interface", iface).Info("scanning with iwlist")
		return NewIWListScanner(iface), nil

	default:
		return nil, fmt.Errorf("unknown radio %q", config.Radio)
	}
}

// DefaultInterface asks nl80211 for the wireless interfaces on this
// host and returns the first one in station mode.
func DefaultInterface() (string, error) {
	client, err := wifi.New()
	if err != nil {
		return "", fmt.Errorf("could not init a wifi interface client: %w", err)
	}
	defer client.Close()

	ifaces, err := client.Interfaces()
	if err != nil {
		return "", fmt.Errorf("could not list wifi interfaces: %w", err)
	}

	names := []string{}
	for _, ifi := range ifaces {
		if ifi.Name == "" {
			continue
		}
		names = append(names, ifi.Name)
		if ifi.Type == wifi.InterfaceTypeStation {
			return ifi.Name, nil
		}
	}
	if len(names) > 0 {
		return names[0], nil
	}
	return "", errors.New("no wireless interfaces found")
}
