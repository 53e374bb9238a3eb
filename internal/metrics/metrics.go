package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks per-command call counts and latency on the client
// side. Safe for concurrent use.
type Metrics struct {
	cmdCount     int64
	startTime    time.Time
	commandStats map[string]*CommandStats
	mu           sync.RWMutex
}

type CommandStats struct {
	Calls        int64
	TotalTime    int64 // nanoseconds
	LastExecTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime:    time.Now(),
		commandStats: make(map[string]*CommandStats),
	}
}

// RecordCommand counts one execution of cmd and folds in its duration.
func (m *Metrics) RecordCommand(cmd string, duration time.Duration) {
	atomic.AddInt64(&m.cmdCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats, exists := m.commandStats[cmd]
	if !exists {
		stats = &CommandStats{}
		m.commandStats[cmd] = stats
	}
	stats.Calls++
	stats.TotalTime += duration.Nanoseconds()
	stats.LastExecTime = time.Now()
}

func (m *Metrics) CommandCount() int64 {
	return atomic.LoadInt64(&m.cmdCount)
}

// CommandStats returns a copy of the stats row for cmd.
func (m *Metrics) CommandStat(cmd string) (CommandStats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats, ok := m.commandStats[cmd]
	if !ok {
		return CommandStats{}, false
	}
	return *stats, true
}

// Snapshot returns uptime plus a copy of every per-command row.
func (m *Metrics) Snapshot() (uptime time.Duration, stats map[string]CommandStats) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats = make(map[string]CommandStats, len(m.commandStats))
	for cmd, s := range m.commandStats {
		stats[cmd] = *s
	}
	return time.Since(m.startTime), stats
}
