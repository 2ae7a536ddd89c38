package profiler

import (
	"testing"
	"time"
)

func TestProfiler_TickReportsAfterInterval(t *testing.T) {
	p := NewProfiler(time.Hour)
	for i := 0; i < 10; i++ {
		if p.Tick() {
			t.Fatal("reported before the interval elapsed")
		}
	}

	p.updateInterval = time.Nanosecond
	time.Sleep(time.Millisecond)
	if !p.Tick() {
		t.Fatal("no report after the interval elapsed")
	}
	s := p.Last()
	if s.FPS <= 0 {
		t.Errorf("fps = %v, want > 0", s.FPS)
	}
	if s.SysMB <= 0 {
		t.Errorf("sys = %v MB, want > 0", s.SysMB)
	}
	if p.frameCount != 0 {
		t.Errorf("frame count not reset: %d", p.frameCount)
	}
}

func TestNewProfiler_DefaultInterval(t *testing.T) {
	if p := NewProfiler(0); p.updateInterval != time.Second {
		t.Errorf("interval = %v, want 1s", p.updateInterval)
	}
}
