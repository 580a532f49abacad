package handlers

import (
	"net/http"
	"runtime"
	"time"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// HealthCheck reports data availability and freshness together with runtime stats
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, details, httpStatus := h.health.HealthCheck()

	response := HealthResponse{
		Status:        status,
		UptimeSeconds: time.Since(h.dataStore.GetServerStartTime()).Round(time.Second).Seconds(),
		Data:          details,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}
	if response.Data == nil {
		response.Data = map[string]any{}
	}
	response.Data["api_version"] = "1.0"

	RespondWithJSON(w, r, httpStatus, response)
}
