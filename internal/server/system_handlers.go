package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/anagnostou/marketscope/internal/database"
)

// SystemHandlers exposes health and monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	scoresDB    *database.DB
	startupTime time.Time
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(scoresDB *database.DB, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system").Logger(),
		scoresDB:    scoresDB,
		startupTime: time.Now(),
	}
}

// RegisterRoutes registers system routes on the given router
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/system/health", h.HandleHealth)
	r.Get("/system/status", h.HandleStatus)
	r.Get("/system/database", h.HandleDatabaseStats)
}

// HealthResponse is the body returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// HandleHealth reports liveness plus a database integrity check
// GET /api/system/health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
	}

	status := http.StatusOK
	if err := h.scoresDB.HealthCheck(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Database health check failed")
		resp.Status = "degraded"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// StatusResponse carries process and host resource usage
type StatusResponse struct {
	UptimeSeconds  float64 `json:"uptime_seconds"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemUsedPercent float64 `json:"mem_used_percent"`
	Goroutines     int     `json:"goroutines"`
	GoVersion      string  `json:"go_version"`
}

// HandleStatus returns CPU, memory and runtime statistics
// GET /api/system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	resp := StatusResponse{
		UptimeSeconds:  time.Since(h.startupTime).Seconds(),
		CPUPercent:     cpuPercent,
		MemUsedPercent: memPercent,
		Goroutines:     runtime.NumGoroutine(),
		GoVersion:      runtime.Version(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DatabaseStatsResponse reports on-disk database size and page layout
type DatabaseStatsResponse struct {
	Name        string  `json:"name"`
	SizeMB      float64 `json:"size_mb"`
	WALSizeMB   float64 `json:"wal_size_mb"`
	PageCount   int64   `json:"page_count"`
	PageSize    int64   `json:"page_size"`
	LastChecked string  `json:"last_checked"`
}

// HandleDatabaseStats returns storage statistics for the scores database
// GET /api/system/database
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scoresDB.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get database stats")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := DatabaseStatsResponse{
		Name:        h.scoresDB.Name(),
		SizeMB:      float64(stats.SizeBytes) / 1024 / 1024,
		WALSizeMB:   float64(stats.WALSizeBytes) / 1024 / 1024,
		PageCount:   stats.PageCount,
		PageSize:    stats.PageSize,
		LastChecked: time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// getSystemStats returns CPU and RAM usage percentages.
// Uses a 100ms sampling interval so the status endpoint stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
