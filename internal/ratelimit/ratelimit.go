package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter tracks daily call budgets for the two AI oracles. Free-tier
// quotas reset daily; so does the limiter.
type Limiter struct {
	mu            sync.Mutex
	classifyCount int
	generateCount int
	maxClassify   int // 0 = unlimited
	maxGenerate   int // 0 = unlimited
	resetTime     time.Time
}

func New(maxClassify, maxGenerate int) *Limiter {
	return &Limiter{
		maxClassify: maxClassify,
		maxGenerate: maxGenerate,
		resetTime:   time.Now().Add(24 * time.Hour),
	}
}

// AllowClassify reports whether a classification call fits the daily
// budget and records it when it does.
func (l *Limiter) AllowClassify() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.maxClassify > 0 && l.classifyCount >= l.maxClassify {
		slog.Warn("classification budget exhausted",
			"used", l.classifyCount, "max", l.maxClassify)
		return false
	}
	l.classifyCount++
	return true
}

// AllowGenerate reports whether a generation call fits the daily
// budget and records it when it does.
func (l *Limiter) AllowGenerate() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.maxGenerate > 0 && l.generateCount >= l.maxGenerate {
		slog.Warn("generation budget exhausted",
			"used", l.generateCount, "max", l.maxGenerate)
		return false
	}
	l.generateCount++
	return true
}

// Usage returns the counts consumed in the current window.
func (l *Limiter) Usage() (classify, generate int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.classifyCount, l.generateCount
}

func (l *Limiter) checkReset() {
	if time.Now().After(l.resetTime) {
		l.classifyCount = 0
		l.generateCount = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}
}
