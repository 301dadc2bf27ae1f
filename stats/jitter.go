package stats

import (
	"sync"

	"github.com/eclesh/welford"
)

// JitterStats tracks the online mean and variance of render scheduling
// error: the daemon feeds it, in samples, how far each render quantum's
// wall-clock arrival runs from its scheduled time. Rising variance here
// means the render loop is falling behind real-time.
type JitterStats struct {
	mu   sync.Mutex
	stat *welford.Stats
}

// NewJitterStats creates an empty JitterStats.
func NewJitterStats() *JitterStats {
	return &JitterStats{stat: welford.New()}
}

// Observe records one tick-boundary scheduling error sample, in samples.
func (j *JitterStats) Observe(errorSamples float64) {
	j.mu.Lock()
	j.stat.Add(errorSamples)
	j.mu.Unlock()
}

// Mean returns the running mean scheduling error, in samples.
func (j *JitterStats) Mean() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stat.Mean()
}

// StdDev returns the running standard deviation of scheduling error, in
// samples.
func (j *JitterStats) StdDev() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stat.Stddev()
}

// Count returns the number of samples observed so far.
func (j *JitterStats) Count() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stat.Count()
}
