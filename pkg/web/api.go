package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	dogescan "github.com/dogeorg/dogescan/pkg"
	"github.com/dogeorg/dogescan/pkg/version"
)

const (
	exportFilename = "wifi_scan.csv"
	scanTimeout    = 30 * time.Second
)

// GET /api?action=scan|stats|networks|export
func (t api) getAPI(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "scan":
		ctx, cancel := context.WithTimeout(r.Context(), scanTimeout)
		defer cancel()
		j, err := t.dbx.Do(ctx, dogescan.ScanNow{})
		if err != nil {
			sendJobError(w, err)
			return
		}
		sendResponse(w, j.Success)

	case "stats":
		sendResponse(w, t.dbx.GetStats())

	case "networks":
		sendResponse(w, dogescan.NewScanResultUpdate(t.dbx.Snapshot()))

	case "export":
		csv, err := t.dbx.ExportCSV()
		if err != nil {
			sendErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		sendCSV(w, exportFilename, csv)

	default:
		http.Error(w, "Invalid action", http.StatusBadRequest)
	}
}

func (t api) getNetworkAnalysis(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "index must be a number")
		return
	}
	j, err := t.dbx.Do(r.Context(), dogescan.AnalyzeNetwork{Index: index})
	if err != nil {
		sendJobError(w, err)
		return
	}
	sendResponse(w, j.Success)
}

type autoScanRequest struct {
	Enabled  bool `json:"enabled"`
	Interval int  `json:"interval"` // ms
}

func (t api) setAutoScan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "Error reading request body")
		return
	}
	defer r.Body.Close()

	var req autoScanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "Error parsing JSON")
		return
	}

	var a dogescan.Action = dogescan.StopAutoScan{}
	if req.Enabled {
		a = dogescan.StartAutoScan{Interval: time.Duration(req.Interval) * time.Millisecond}
	}
	j, err := t.dbx.Do(r.Context(), a)
	if err != nil {
		sendJobError(w, err)
		return
	}
	sendResponse(w, j.Success)
}

func (t api) getVersion(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, version.GetRelease())
}

func sendJobError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dogescan.ErrScanInProgress), errors.Is(err, dogescan.ErrAttackRunning):
		sendErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, dogescan.ErrBadInterval):
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dogescan.ErrIndexOutOfRange), errors.Is(err, dogescan.ErrNoTarget):
		sendErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, dogescan.ErrScanFailed):
		sendErrorResponse(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		sendErrorResponse(w, http.StatusGatewayTimeout, err.Error())
	default:
		sendErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
