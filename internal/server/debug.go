package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"captionscroll/internal/util"
)

// DiagnosticsSource supplies the latest diagnostics snapshot for /debug/sync.
type DiagnosticsSource interface {
	DiagnosticsJSON() (interface{}, error)
}

// DebugServer exposes the optional observability surface: prometheus
// metrics and a JSON snapshot of the sync engine's diagnostics. It never
// participates in the frame path.
type DebugServer struct {
	srv    *http.Server
	source DiagnosticsSource
}

// NewDebugServer creates a debug server bound to addr.
func NewDebugServer(addr string, source DiagnosticsSource) *DebugServer {
	ds := &DebugServer{source: source}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/debug/sync", ds.handleSync).Methods(http.MethodGet)

	ds.srv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return ds
}

// Start serves in a background goroutine.
func (ds *DebugServer) Start() {
	go func() {
		util.LogInfof("Debug server listening on %s", ds.srv.Addr)
		if err := ds.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.LogErrorf("Debug server failed: %v", err)
		}
	}()
}

// Stop shuts the server down.
func (ds *DebugServer) Stop(ctx context.Context) error {
	return ds.srv.Shutdown(ctx)
}

func (ds *DebugServer) handleSync(w http.ResponseWriter, r *http.Request) {
	snapshot, err := ds.source.DiagnosticsJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := sonic.Marshal(snapshot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
