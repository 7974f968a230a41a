package executor

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stats tracks executions performed by an Executor.
type Stats struct {
	Runs         atomic.Uint64
	Completed    atomic.Uint64
	Faulted      atomic.Uint64
	Running      atomic.Int32
	TotalLatency atomic.Int64 // Nanoseconds
	MinLatency   atomic.Int64 // Nanoseconds
	MaxLatency   atomic.Int64 // Nanoseconds
}

// AverageLatency returns the mean duration of finished executions.
func (s *Stats) AverageLatency() time.Duration {
	finished := s.Completed.Load() + s.Faulted.Load()
	if finished == 0 {
		return 0
	}
	return time.Duration(s.TotalLatency.Load() / int64(finished))
}

// recordLatency updates latency counters.
func (s *Stats) recordLatency(duration time.Duration) {
	nanos := duration.Nanoseconds()
	s.TotalLatency.Add(nanos)

	for {
		current := s.MinLatency.Load()
		if current != 0 && nanos >= current {
			break
		}
		if s.MinLatency.CompareAndSwap(current, nanos) {
			break
		}
	}

	for {
		current := s.MaxLatency.Load()
		if nanos <= current {
			break
		}
		if s.MaxLatency.CompareAndSwap(current, nanos) {
			break
		}
	}
}

func (s *Stats) String() string {
	return fmt.Sprintf(
		"Runs: %d started, %d completed, %d faulted, %d running | "+
			"Latency: avg=%v, min=%v, max=%v",
		s.Runs.Load(),
		s.Completed.Load(),
		s.Faulted.Load(),
		s.Running.Load(),
		s.AverageLatency(),
		time.Duration(s.MinLatency.Load()),
		time.Duration(s.MaxLatency.Load()),
	)
}
