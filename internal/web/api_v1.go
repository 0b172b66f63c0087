package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"

	"github.com/rook-computer/lifewheel/internal/app"
	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// API is the part of the app the HTTP interface drives.
type API interface {
	Status() state.Status
	WheelState(ctx context.Context) (wheel.State, error)
	Overlay(ctx context.Context) ([]ui.LayerDescription, error)
	Phase(ctx context.Context) (app.PhaseInfo, error)
	Advance(ctx context.Context, name string) error
	StartOver(ctx context.Context) error
	Dispatch(ctx context.Context, in app.Input) error
	Frame(ctx context.Context) (*image.RGBA, error)
	ExportWheel(ctx context.Context, w io.Writer) error
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type phaseRequest struct {
	Name  string `json:"name"`
	Reset bool   `json:"reset"`
}

func apiV1Router(api API, logger Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, api.Status())
	})
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		st, err := api.WheelState(r.Context())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
	mux.HandleFunc("/overlay", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		descs, err := api.Overlay(r.Context())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, descs)
	})
	mux.HandleFunc("/phase", func(w http.ResponseWriter, r *http.Request) { handlePhase(w, r, api, logger) })
	mux.HandleFunc("/input", func(w http.ResponseWriter, r *http.Request) { handleInput(w, r, api) })
	mux.HandleFunc("/wheel.png", func(w http.ResponseWriter, r *http.Request) { handleWheelPNG(w, r, api, logger) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFramePNG(w, r, api, logger) })
	return mux
}

func handlePhase(w http.ResponseWriter, r *http.Request, api API, logger Logger) {
	switch r.Method {
	case http.MethodGet:
		info, err := api.Phase(r.Context())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	case http.MethodPost:
		var req phaseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var err error
		switch {
		case req.Reset:
			logger.Infof("web", "start over requested")
			err = api.StartOver(r.Context())
		case req.Name != "":
			logger.Infof("web", "advance to %s requested", req.Name)
			err = api.Advance(r.Context(), req.Name)
		default:
			writeAPIError(w, http.StatusBadRequest, "invalid_request", "name or reset is required")
			return
		}
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleInput(w http.ResponseWriter, r *http.Request, api API) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var in app.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Action == "" {
		writeAPIError(w, http.StatusBadRequest, "invalid_request", "action is required")
		return
	}
	if err := api.Dispatch(r.Context(), in); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleWheelPNG(w http.ResponseWriter, r *http.Request, api API, logger Logger) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	// Render fully before writing so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := api.ExportWheel(r.Context(), &buf); err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="wheel.png"`)
	writePNG(w, buf.Bytes(), logger)
}

func handleFramePNG(w http.ResponseWriter, r *http.Request, api API, logger Logger) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	frame, err := api.Frame(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writePNG(w, buf.Bytes(), logger)
}

func writePNG(w http.ResponseWriter, data []byte, logger Logger) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Errorf("web", "write png: %v", err)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// writeAppError maps app and overlay errors onto HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ui.ErrNoNode):
		writeAPIError(w, http.StatusNotFound, "no_node", err.Error())
	case errors.Is(err, ui.ErrInactive):
		writeAPIError(w, http.StatusConflict, "inactive", err.Error())
	case errors.Is(err, app.ErrUnknownPhase):
		writeAPIError(w, http.StatusNotFound, "unknown_phase", err.Error())
	case errors.Is(err, app.ErrUnknownAction):
		writeAPIError(w, http.StatusBadRequest, "unknown_action", err.Error())
	case errors.Is(err, app.ErrStopped):
		writeAPIError(w, http.StatusServiceUnavailable, "stopped", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeAPIError(w, http.StatusServiceUnavailable, "timeout", err.Error())
	default:
		writeAPIError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
