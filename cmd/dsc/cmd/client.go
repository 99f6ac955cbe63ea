package cmd

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const requestTimeout = 40 * time.Second

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type network struct {
	SSID          string    `json:"ssid"`
	BSSID         string    `json:"bssid"`
	RSSI          int       `json:"rssi"`
	Channel       int       `json:"channel"`
	Encryption    string    `json:"encryption"`
	Hidden        bool      `json:"hidden"`
	FirstSeen     time.Time `json:"firstSeen"`
	LastSeen      time.Time `json:"lastSeen"`
	Count         int       `json:"count"`
	SecurityLevel string    `json:"securityLevel"`
	Quality       int       `json:"quality"`
}

type scanResult struct {
	Networks  []network `json:"networks"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(serverURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")
}

// check turns transport failures and API error payloads into one error
func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	if e, ok := resp.Error().(*apiError); ok && e.Error.Message != "" {
		return fmt.Errorf("%s (%d)", e.Error.Message, e.Error.Code)
	}
	return fmt.Errorf("server returned %s", resp.Status())
}

func getAction(action string, out any) (*resty.Response, error) {
	req := newClient().R().
		SetQueryParam("action", action).
		SetError(&apiError{})
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Get("/api")
	return resp, check(resp, err)
}
