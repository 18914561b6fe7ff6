// Package pprofserver exposes the Go profiling endpoints for the long-lived
// serve mode. Every other docket command is one process per invocation and
// exits before a profiler would attach.
package pprofserver

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"time"
)

// Handle mounts the pprof endpoints on mux.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

// Launch serves the profiling endpoints on the IPv6 loopback at the given
// port in a background goroutine, keeping them off the open network. A
// profiler that fails to listen is logged and forgotten: it never takes the
// MCP session down with it.
func Launch(port string, logger *slog.Logger) {
	mux := http.NewServeMux()
	Handle(mux)
	server := &http.Server{
		Addr:              "[::1]" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		ctx := context.Background()
		logger.LogAttrs(ctx, slog.LevelInfo, "starting pprof server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "pprof server stopped", slog.String("reason", err.Error()))
		}
	}()
}
