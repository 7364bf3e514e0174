package server

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsLastTrigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	done := make(chan int, 3)

	for i := 1; i <= 3; i++ {
		i := i
		d.Trigger(func() { done <- i })
	}

	select {
	case got := <-done:
		if got != 3 {
			t.Fatalf("ran trigger %d, want 3", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("debounced call never ran")
	}

	select {
	case got := <-done:
		t.Fatalf("superseded trigger %d ran", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	if !d.Stop() {
		t.Fatalf("Stop should report the pending call")
	}
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("stopped debouncer ran %d calls", n)
	}
	if d.Stop() {
		t.Fatalf("nothing should be pending after Stop")
	}
}
