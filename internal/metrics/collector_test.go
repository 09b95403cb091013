package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorRecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpSearch, 100*time.Millisecond)
	c.RecordTiming(OpSearch, 300*time.Millisecond)

	snap := c.Snapshot()
	if snap.Search == nil {
		t.Fatal("Search snapshot should not be nil after recording")
	}
	if snap.Search.Count != 2 {
		t.Errorf("Count = %d, want 2", snap.Search.Count)
	}
	if snap.Search.Failures != 0 {
		t.Errorf("Failures = %d, want 0", snap.Search.Failures)
	}
	if snap.Search.MinTimeMs != 100 || snap.Search.MaxTimeMs != 300 {
		t.Errorf("Min/Max = %d/%d, want 100/300", snap.Search.MinTimeMs, snap.Search.MaxTimeMs)
	}
	if snap.Search.AvgTimeMs != 200 {
		t.Errorf("AvgTimeMs = %v, want 200", snap.Search.AvgTimeMs)
	}
}

func TestCollectorRecordFailure(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpCompare, 50*time.Millisecond)
	c.RecordFailure(OpCompare, 150*time.Millisecond)

	snap := c.Snapshot()
	if snap.Compare == nil {
		t.Fatal("Compare snapshot should not be nil")
	}
	if snap.Compare.Count != 2 {
		t.Errorf("Count = %d, want 2 (failures count toward total)", snap.Compare.Count)
	}
	if snap.Compare.Failures != 1 {
		t.Errorf("Failures = %d, want 1", snap.Compare.Failures)
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	c := NewCollector()

	snap := c.Snapshot()
	if snap.Search != nil || snap.Compare != nil || snap.HTTPRequest != nil {
		t.Errorf("empty collector should produce nil operation snapshots: %+v", snap)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("UptimeSeconds = %v, want >= 0", snap.UptimeSeconds)
	}
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpHTTPRequest, time.Millisecond)
			c.RecordFailure(OpSearch, time.Millisecond)
			_ = c.Snapshot()
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.HTTPRequest.Count != 50 {
		t.Errorf("HTTPRequest.Count = %d, want 50", snap.HTTPRequest.Count)
	}
	if snap.Search.Failures != 50 {
		t.Errorf("Search.Failures = %d, want 50", snap.Search.Failures)
	}
}
