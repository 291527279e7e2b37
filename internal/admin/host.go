package admin

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type HostStats struct {
	MemoryUsedPercent float64       `json:"memory_used_percent"`
	MemoryUsedMB      uint64        `json:"memory_used_mb"`
	MemoryTotalMB     uint64        `json:"memory_total_mb"`
	Uptime            time.Duration `json:"uptime_ns"`
	Goroutines        int           `json:"goroutines"`
	GoVersion         string        `json:"go_version"`
}

// CollectHostStats reads memory and uptime for the dashboard. Figures the
// platform cannot report stay zero.
func CollectHostStats(ctx context.Context) HostStats {
	stats := HostStats{
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryUsedPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
		stats.MemoryTotalMB = vm.Total / 1024 / 1024
	}
	if secs, err := host.UptimeWithContext(ctx); err == nil {
		stats.Uptime = time.Duration(secs) * time.Second
	}
	return stats
}
