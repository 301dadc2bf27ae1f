// Package stats collects generator runtime counters and serves them as
// JSON over HTTP, optionally mirrored into Prometheus, plus an online
// jitter tracker for tick-boundary scheduling error.
package stats

import (
	"sync"
	"sync/atomic"

	"github.com/equivtech/timesig/generator"
)

// syncMapInt64 is a mutex-guarded counter map keyed by generator.State,
// mirroring the teacher's per-message-type counter map.
type syncMapInt64 struct {
	sync.Mutex
	m map[generator.State]int64
}

func (s *syncMapInt64) init() {
	s.m = make(map[generator.State]int64)
}

func (s *syncMapInt64) keys() []generator.State {
	s.Lock()
	defer s.Unlock()
	keys := make([]generator.State, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

func (s *syncMapInt64) load(key generator.State) int64 {
	s.Lock()
	defer s.Unlock()
	return s.m[key]
}

func (s *syncMapInt64) inc(key generator.State) {
	s.Lock()
	s.m[key]++
	s.Unlock()
}

func (s *syncMapInt64) copy(dst *syncMapInt64) {
	for _, k := range s.keys() {
		dst.Lock()
		dst.m[k] = s.load(k)
		dst.Unlock()
	}
}

func (s *syncMapInt64) reset() {
	s.Lock()
	for k := range s.m {
		s.m[k] = 0
	}
	s.Unlock()
}

// counters is the live (unreported) counter state.
type counters struct {
	stateTransitions syncMapInt64
	renderQuantums   int64
	jjyMorse         int64
}

func (c *counters) init() {
	c.stateTransitions.init()
}

func (c *counters) reset() {
	c.stateTransitions.reset()
	atomic.StoreInt64(&c.renderQuantums, 0)
	atomic.StoreInt64(&c.jjyMorse, 0)
}

// Counters tracks render quantums processed, state transitions per
// generator.State, and JJY Morse-overlay activations. Safe for
// concurrent use from the generator's render callback and an HTTP
// handler goroutine simultaneously.
type Counters struct {
	report counters
	counters
}

// NewCounters creates an empty, ready-to-use Counters.
func NewCounters() *Counters {
	c := &Counters{}
	c.init()
	c.report.init()
	return c
}

// IncRenderQuantum records one generator.Coordinator.Process call.
func (c *Counters) IncRenderQuantum() {
	atomic.AddInt64(&c.renderQuantums, 1)
}

// IncStateTransition records one transition into state.
func (c *Counters) IncStateTransition(state generator.State) {
	c.stateTransitions.inc(state)
}

// IncJJYMorse records one JJY Morse-overlay activation.
func (c *Counters) IncJJYMorse() {
	atomic.AddInt64(&c.jjyMorse, 1)
}

// Snapshot copies the live counters into the reported set. Each counter
// is read atomically on its own; the fields are not read together as one
// atomic unit, so an increment racing the copy may show in one field and
// not another.
func (c *Counters) Snapshot() {
	c.stateTransitions.copy(&c.report.stateTransitions)
	c.report.renderQuantums = atomic.LoadInt64(&c.renderQuantums)
	c.report.jjyMorse = atomic.LoadInt64(&c.jjyMorse)
}

// Reset sets each live counter to 0; each store is atomic on its own.
func (c *Counters) Reset() {
	c.reset()
}

// toMap converts the most recent snapshot into a flat string-keyed map,
// suitable for JSON encoding or feeding to a Prometheus exporter.
func (c *Counters) toMap() map[string]int64 {
	res := map[string]int64{
		"render_quantums": c.report.renderQuantums,
		"jjy_morse":       c.report.jjyMorse,
	}
	for _, state := range c.report.stateTransitions.keys() {
		res["state_transitions."+state.String()] = c.report.stateTransitions.load(state)
	}
	return res
}
