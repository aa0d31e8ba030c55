package watcher

import (
	"testing"
	"time"
)

const testInterval = 50 * time.Millisecond

func receiveBatch(t *testing.T, ch <-chan []Event, timeout time.Duration) []Event {
	t.Helper()
	select {
	case batch := <-ch:
		return batch
	case <-time.After(timeout):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func Test_Debouncer_CollapsesSamePath(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Add("src/App.tsx", OpCreate)
	d.Add("src/App.tsx", OpWrite)

	batch := receiveBatch(t, d.Output(), 500*time.Millisecond)
	if len(batch) != 1 {
		t.Fatalf("expected 1 event, got %d", len(batch))
	}
	if batch[0].Op != OpWrite {
		t.Errorf("expected latest op write, got %s", batch[0].Op)
	}
}

func Test_Debouncer_SortedBatch(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Add("styles.css", OpWrite)
	d.Add("App.tsx", OpCreate)
	time.Sleep(testInterval / 2)
	d.Add("README.md", OpRemove)

	batch := receiveBatch(t, d.Output(), 500*time.Millisecond)
	expected := []string{"App.tsx", "README.md", "styles.css"}
	if len(batch) != len(expected) {
		t.Fatalf("expected %d events in one batch, got %d", len(expected), len(batch))
	}
	for i, rel := range expected {
		if batch[i].Rel != rel {
			t.Errorf("event[%d]: expected %s, got %s", i, rel, batch[i].Rel)
		}
	}
}

func Test_Debouncer_StopDropsPending(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Add("App.tsx", OpWrite)
	d.Stop()
	d.Add("late.tsx", OpWrite)

	select {
	case batch := <-d.Output():
		t.Errorf("expected no batch after stop, got %v", batch)
	case <-time.After(3 * testInterval):
	}
}
