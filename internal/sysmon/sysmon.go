// Package sysmon samples system-wide CPU and memory usage for the
// execution banner of verbose runs.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// MemTotal is the physical memory in bytes, zero when unknown.
	MemTotal uint64
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	return s
}

// String renders s as "CPU 12.5%, memory 43.0% of 15.6 GiB".
func (s Stats) String() string {
	if s.MemTotal == 0 {
		return fmt.Sprintf("CPU %.1f%%, memory %.1f%%", s.CPUPercent, s.MemPercent)
	}
	return fmt.Sprintf("CPU %.1f%%, memory %.1f%% of %.1f GiB", s.CPUPercent, s.MemPercent, float64(s.MemTotal)/(1<<30))
}
