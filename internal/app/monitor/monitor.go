package monitor

import (
	"context"
	"math"
	"sync"

	"github.com/shirou/gopsutil/v4/process"
)

// Stats contains process resource statistics
type Stats struct {
	CPU float64
	MEM float64 // in MB
}

// Monitor resolves publisher processes and samples resource usage
type Monitor interface {
	ProcessName(ctx context.Context, pid int) string
	GetStats(ctx context.Context, pid int) (Stats, error)
}

type monitor struct {
	names map[int]string
	mu    sync.Mutex
}

// NewMonitor creates a new Monitor instance
func NewMonitor() Monitor {
	return &monitor{
		names: make(map[int]string),
	}
}

// ProcessName returns the executable name for pid, or "" when there is no pid or it cannot be resolved
func (m *monitor) ProcessName(ctx context.Context, pid int) string {
	if !validPID(pid) {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if name, ok := m.names[pid]; ok {
		return name
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		return ""
	}

	name, err := proc.NameWithContext(ctx)
	if err != nil || name == "" {
		return ""
	}

	m.names[pid] = name

	return name
}

// GetStats samples CPU and memory usage of pid
func (m *monitor) GetStats(ctx context.Context, pid int) (Stats, error) {
	if !validPID(pid) {
		return Stats{}, nil
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		stats.CPU = cpuPercent
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		stats.MEM = float64(memInfo.RSS) / 1024 / 1024
	}

	return stats, nil
}

func validPID(pid int) bool {
	return pid > 0 && pid <= math.MaxInt32
}
