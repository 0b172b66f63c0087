package web

import (
	"net/http"
)

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, api API, logger Logger) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(api, logger)))
}

// RegisterUI serves either embedded UI assets or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / for the remote control page
func NewDefaultMux(staticDir string, api API, logger Logger) *http.ServeMux {
	if logger == nil {
		logger = noopLogger{}
	}
	mux := http.NewServeMux()
	RegisterAPIV1(mux, api, logger)
	RegisterUI(mux, staticDir)
	return mux
}
