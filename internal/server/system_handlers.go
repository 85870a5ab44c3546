package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// systemHealth is the observability payload for the dashboard's own process.
type systemHealth struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	Goroutines    int     `json:"goroutines"`
	HeapAllocMB   uint64  `json:"heap_alloc_mb"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

var startTime = time.Now()

// handleSystemHealth reports host and process statistics.
func (s *Server) handleSystemHealth(w http.ResponseWriter, r *http.Request) {
	health := systemHealth{
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
	}

	if cpuPercent, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(cpuPercent) > 0 {
		health.CPUPercent = cpuPercent[0]
	} else if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read CPU usage")
	}

	if memStat, err := mem.VirtualMemory(); err == nil {
		health.MemoryPercent = memStat.UsedPercent
		health.MemoryUsedMB = memStat.Used / 1024 / 1024
	} else {
		s.log.Warn().Err(err).Msg("Failed to read memory usage")
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	health.HeapAllocMB = ms.HeapAlloc / 1024 / 1024

	s.writeJSON(w, http.StatusOK, health)
}
