package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCountersConcurrent(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.AddItemsChecked(1)
				m.IncrementOracleFailures()
			}
		}()
	}
	wg.Wait()

	if m.ItemsChecked != 1000 {
		t.Errorf("ItemsChecked = %d, want 1000", m.ItemsChecked)
	}
	if m.OracleFailures != 1000 {
		t.Errorf("OracleFailures = %d, want 1000", m.OracleFailures)
	}
}

func TestRecordDigestTimeAverage(t *testing.T) {
	m := &Metrics{}
	m.RecordDigestTime(100 * time.Millisecond)
	m.RecordDigestTime(300 * time.Millisecond)

	if m.AverageDigestTime != 200*time.Millisecond {
		t.Errorf("AverageDigestTime = %v, want 200ms", m.AverageDigestTime)
	}
}

func TestGetStatsHealthFlag(t *testing.T) {
	m := &Metrics{IsHealthy: true}
	m.SetError("oracle down")

	stats := m.GetStats()
	if stats["is_healthy"].(bool) {
		t.Error("expected unhealthy after SetError")
	}
	if stats["last_error"].(string) != "oracle down" {
		t.Errorf("last_error = %v", stats["last_error"])
	}

	m.SetLastRun()
	if !m.GetStats()["is_healthy"].(bool) {
		t.Error("expected healthy after SetLastRun")
	}
}
