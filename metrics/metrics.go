// Package metrics provides Prometheus metrics for the editor session.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fileOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codestudio_file_operations_total",
			Help: "File tree mutations applied through the session",
		},
		[]string{"op"},
	)

	editsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codestudio_edits_total",
			Help: "Edits applied to the active file",
		},
	)

	savesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codestudio_saves_total",
			Help: "Project saves by trigger and status",
		},
		[]string{"trigger", "status"},
	)

	saveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codestudio_save_duration_seconds",
			Help:    "Time to encode and store a project snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)

	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codestudio_loads_total",
			Help: "Project loads by status",
		},
		[]string{"status"},
	)

	projectFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codestudio_project_nodes",
			Help: "Number of nodes in the current project",
		},
	)

	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codestudio_tool_calls_total",
			Help: "MCP tool calls by tool and outcome",
		},
		[]string{"tool", "status"},
	)
)

// Handler returns the Prometheus metrics handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordFileOp counts one applied tree mutation.
func RecordFileOp(op string) {
	fileOpsTotal.WithLabelValues(op).Inc()
}

// RecordEdit counts one edit of the active file.
func RecordEdit() {
	editsTotal.Inc()
}

// RecordSave records a save. trigger is "manual" or "auto".
func RecordSave(trigger string, duration time.Duration, success bool) {
	savesTotal.WithLabelValues(trigger, status(success)).Inc()
	saveDuration.Observe(duration.Seconds())
}

// RecordLoad records a project load.
func RecordLoad(success bool) {
	loadsTotal.WithLabelValues(status(success)).Inc()
}

// SetProjectNodes sets the current node count.
func SetProjectNodes(count int) {
	projectFiles.Set(float64(count))
}

// RecordToolCall records one MCP tool invocation.
func RecordToolCall(tool string, success bool) {
	toolCallsTotal.WithLabelValues(tool, status(success)).Inc()
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
