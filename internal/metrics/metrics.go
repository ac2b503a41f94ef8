package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsChecked       int64
	ItemsMatched       int64
	OracleFailures     int64
	ClassifyCacheHits  int64
	DigestsBuilt       int64
	DigestsEmpty       int64
	MessagesSent       int64
	SubscriptionsSaved int64

	// Timings
	LastDigestTime    time.Duration
	TotalDigestTime   time.Duration
	DigestCount       int64
	AverageDigestTime time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddItemsChecked(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsChecked += n
}

func (m *Metrics) AddItemsMatched(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsMatched += n
}

func (m *Metrics) IncrementOracleFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OracleFailures++
}

func (m *Metrics) IncrementClassifyCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassifyCacheHits++
}

func (m *Metrics) IncrementDigestsBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsBuilt++
}

func (m *Metrics) IncrementDigestsEmpty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsEmpty++
}

func (m *Metrics) IncrementMessagesSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MessagesSent++
}

func (m *Metrics) IncrementSubscriptionsSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubscriptionsSaved++
}

func (m *Metrics) RecordDigestTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastDigestTime = duration
	m.TotalDigestTime += duration
	m.DigestCount++

	if m.DigestCount > 0 {
		m.AverageDigestTime = m.TotalDigestTime / time.Duration(m.DigestCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_checked":          m.ItemsChecked,
		"items_matched":          m.ItemsMatched,
		"oracle_failures":        m.OracleFailures,
		"classify_cache_hits":    m.ClassifyCacheHits,
		"digests_built":          m.DigestsBuilt,
		"digests_empty":          m.DigestsEmpty,
		"messages_sent":          m.MessagesSent,
		"subscriptions_saved":    m.SubscriptionsSaved,
		"last_digest_time_ms":    m.LastDigestTime.Milliseconds(),
		"average_digest_time_ms": m.AverageDigestTime.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
