package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/rs/zerolog"
)

// Stats is one sampling window of frame and memory statistics.
type Stats struct {
	FPS          float64
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	SampleWindow time.Duration
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Emits stats as a debug log event at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	log            zerolog.Logger
}

// NewProfiler creates a new Profiler sampling every interval.
// Non-positive intervals default to 1 second.
//
// Parameters:
//   - interval: the sampling window
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		memStats:       runtime.MemStats{},
		log:            logging.With().Str("component", "profiler").Logger(),
	}
}

// Last returns the statistics of the most recently completed sampling window.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap bytes. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	s := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
		SampleWindow: elapsed,
	}

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.log.Debug().
		Float64("fps", s.FPS).
		Float64("heap_mb", s.HeapMB).
		Float64("alloc_rate_mb_s", s.AllocRateMB).
		Uint32("gc_count", s.GCCount).
		Uint64("gc_last_pause_us", s.LastPauseUs).
		Uint64("gc_max_pause_us", s.MaxPauseUs).
		Float64("sys_mb", s.SysMB).
		Msg("frame stats")

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
