package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"wazp-annotator/internal/logging"
)

// SessionCounter reports the number of open sessions.
type SessionCounter interface {
	Count() int
}

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	InstanceID string
	sessions   SessionCounter
	started    time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(instanceID string, sessions SessionCounter) *SystemHandler {
	return &SystemHandler{
		InstanceID: instanceID,
		sessions:   sessions,
		started:    time.Now(),
	}
}

// @Summary Get system stats
// @Description Get process and host statistics
// @Tags system
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /system/stats [get]
func (h *SystemHandler) GetStats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := gin.H{
		"instance_id":    h.InstanceID,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"heap_mb":        m.Alloc / 1024 / 1024,
		"cpu_cores":      runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"go_version":     runtime.Version(),
		"sessions":       h.sessions.Count(),
	}

	ctx := c.Request.Context()
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfoWithContext(ctx); err == nil {
			stats["rss_mb"] = info.RSS / 1024 / 1024
		}
		if pct, err := p.CPUPercentWithContext(ctx); err == nil {
			stats["process_cpu_percent"] = pct
		}
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats["host_memory_total_mb"] = vm.Total / 1024 / 1024
		stats["host_memory_used_percent"] = vm.UsedPercent
	} else {
		logging.Debug(c).Err(err).Msg("Host memory stats unavailable")
	}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		stats["host_cpu_percent"] = pcts[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"stats":     stats,
		"timestamp": time.Now().Unix(),
	})
}
