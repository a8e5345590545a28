package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/output"
)

// Error messages returned with 404 responses.
const (
	msgVesselNotFound = "Vessel not found or data not loaded."
	msgDeviceNotFound = "No data or device not found."
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

func (s *Server) handleVesselSummary(w http.ResponseWriter, r *http.Request) {
	name, err := readParam(w, r, "vesselName")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.store.GetVesselSummary(name)
	switch {
	case errors.Is(err, sustainabos.ErrNotFound), errors.Is(err, sustainabos.ErrNoData):
		writeError(w, http.StatusNotFound, msgVesselNotFound)
		return
	case err != nil:
		s.logger.Error("vessel summary failed", zap.String("vessel", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeView(w, r, view)
}

func (s *Server) handleDeviceSummary(w http.ResponseWriter, r *http.Request) {
	device, err := readParam(w, r, "deviceName")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.store.GetDeviceSummary(device)
	switch {
	case errors.Is(err, sustainabos.ErrNoData), err == nil && view.Empty():
		writeError(w, http.StatusNotFound, msgDeviceNotFound)
		return
	case err != nil:
		s.logger.Error("device summary failed", zap.String("device", device), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeView(w, r, view)
}

func (s *Server) handleVessels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.store.Vessels()))
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.store.Devices()))
}

func (s *Server) handleSummaryNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.store.SummaryNames()))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	view, ok := s.store.Summary(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("summary %q not found", name))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleTopVessels(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.store.TopVessels(limit))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	wb := s.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"workbook":  wb.Name,
		"rows":      wb.Tracker.Len(),
		"loaded_at": wb.LoadedAt,
	})
}

// writeView renders view as an HTML table, or as JSON with ?format=json.
func (s *Server) writeView(w http.ResponseWriter, r *http.Request, view models.View) {
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, view)
		return
	}
	html, err := output.HTMLTable(view)
	if err != nil {
		s.logger.Error("render table failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// readParam reads a string field from a JSON or form request body. Form
// bodies are used when the content type says so, JSON otherwise.
func readParam(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return "", fmt.Errorf("%w: invalid form body", errBadRequest)
		}
		return strings.TrimSpace(r.PostFormValue(field)), nil
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: invalid JSON body", errBadRequest)
	}
	v, ok := body[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", errBadRequest, field)
	}
	return strings.TrimSpace(s), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := output.ToJSON(v, false)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
