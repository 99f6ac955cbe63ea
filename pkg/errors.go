package dogescan

import "errors"

var (
	ErrScanInProgress  = errors.New("scan already in progress")
	ErrScanFailed      = errors.New("scan failed")
	ErrIndexOutOfRange = errors.New("network index out of range")
	ErrNoTarget        = errors.New("no target network selected")
	ErrAttackRunning   = errors.New("simulation already running")
	ErrUnknownAction   = errors.New("unknown action")
	ErrBadInterval     = errors.New("scan interval too short")
)
