package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetric summarizes a whole experiment run.
type RunMetric struct {
	Variants int
	Games    int
	Turns    int
	Captures int
	Wickets  int
	Duration time.Duration
}

// Collector aggregates counters across concurrently running matches.
type Collector interface {
	Start(variants int)
	AddGame()
	AddTurns(n int)
	AddCaptures(n int)
	AddWickets(n int)
	Complete() RunMetric
}

type collector struct {
	variants  int
	startTime time.Time
	games     atomic.Int64
	turns     atomic.Int64
	captures  atomic.Int64
	wickets   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(variants int) {
	m.startTime = time.Now()
	m.variants = variants
}

func (m *collector) AddGame() {
	m.games.Add(1)
}

func (m *collector) AddTurns(n int) {
	m.turns.Add(int64(n))
}

func (m *collector) AddCaptures(n int) {
	m.captures.Add(int64(n))
}

func (m *collector) AddWickets(n int) {
	m.wickets.Add(int64(n))
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Variants: m.variants,
		Games:    int(m.games.Load()),
		Turns:    int(m.turns.Load()),
		Captures: int(m.captures.Load()),
		Wickets:  int(m.wickets.Load()),
		Duration: time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(variants int) {}
func (m *dummyCollector) AddGame()           {}
func (m *dummyCollector) AddTurns(n int)     {}
func (m *dummyCollector) AddCaptures(n int)  {}
func (m *dummyCollector) AddWickets(n int)   {}
func (m *dummyCollector) Complete() RunMetric {
	return RunMetric{}
}
