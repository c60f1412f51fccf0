// Package benchmark wraps a tool run and reports its runtime and memory
// usage, plus host information for repeatability.
package benchmark

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// Stats is the resource usage of one wrapped run.
type Stats struct {
	Label          string
	Elapsed        time.Duration
	AllocMB        float64 // change in live heap
	TotalAllocMB   float64 // everything allocated during the run
	HeapMB         float64
	GCCycles       uint32
	StartGoroutine int
	EndGoroutine   int
}

const mb = 1024.0 * 1024.0

// Run executes f and writes the benchmark report to out. The error from f
// is returned unchanged after the report is written.
func Run(out io.Writer, label string, f func() error) (Stats, error) {
	fmt.Fprintf(out, "[Benchmark] Running: %s\n", label)

	// Snapshot environment info
	fmt.Fprintln(out, "[Benchmark] Timestamp:", time.Now().Format(time.RFC1123))
	if host, err := os.Hostname(); err == nil {
		fmt.Fprintln(out, "[Benchmark] Hostname:", host)
	}
	fmt.Fprintln(out, "[Benchmark] Go Version:", runtime.Version())
	fmt.Fprintf(out, "[Benchmark] OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// Prepare for benchmark
	runtime.GC()
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	s := Stats{Label: label, StartGoroutine: runtime.NumGoroutine()}
	start := time.Now()

	runErr := f()

	s.Elapsed = time.Since(start)
	runtime.ReadMemStats(&memEnd)
	s.EndGoroutine = runtime.NumGoroutine()
	s.AllocMB = (float64(memEnd.Alloc) - float64(memStart.Alloc)) / mb
	s.TotalAllocMB = float64(memEnd.TotalAlloc-memStart.TotalAlloc) / mb
	s.HeapMB = float64(memEnd.HeapAlloc) / mb
	s.GCCycles = memEnd.NumGC - memStart.NumGC

	// Report resource usage
	fmt.Fprintf(out, "[Benchmark] Time Elapsed: %v\n", s.Elapsed)
	fmt.Fprintf(out, "[Benchmark] Memory Used: %.2f MB\n", s.AllocMB)
	fmt.Fprintf(out, "[Benchmark] Total Allocated: %.2f MB\n", s.TotalAllocMB)
	fmt.Fprintf(out, "[Benchmark] Peak Heap: %.2f MB\n", s.HeapMB)
	fmt.Fprintf(out, "[Benchmark] GC Cycles: %d\n", s.GCCycles)
	fmt.Fprintf(out, "[Benchmark] CPU Cores: %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "[Benchmark] Goroutines Started: %d -> %d\n", s.StartGoroutine, s.EndGoroutine)
	fmt.Fprintln(out, "[Benchmark] ----------------------------------------")

	return s, runErr
}
