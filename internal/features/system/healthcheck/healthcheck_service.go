package system_healthcheck

import (
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

var startedAt = time.Now()

type HealthcheckService struct{}

type HealthStatus struct {
	Status        string       `json:"status"`
	UptimeSeconds int64        `json:"uptimeSeconds"`
	Memory        *MemoryStats `json:"memory,omitempty"`
	Disk          *DiskStats   `json:"disk,omitempty"`
}

type MemoryStats struct {
	TotalBytes     uint64  `json:"totalBytes"`
	AvailableBytes uint64  `json:"availableBytes"`
	UsedPercent    float64 `json:"usedPercent"`
}

type DiskStats struct {
	TotalBytes  uint64  `json:"totalBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

// GetHealthStatus reports liveness plus host memory and disk usage.
// Stats collection failures are not fatal, the stats are just omitted.
func (s *HealthcheckService) GetHealthStatus() *HealthStatus {
	status := &HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status.Memory = &MemoryStats{
			TotalBytes:     vm.Total,
			AvailableBytes: vm.Available,
			UsedPercent:    vm.UsedPercent,
		}
	}

	if usage, err := disk.Usage("/"); err == nil {
		status.Disk = &DiskStats{
			TotalBytes:  usage.Total,
			FreeBytes:   usage.Free,
			UsedPercent: usage.UsedPercent,
		}
	}

	return status
}
