package commands

import (
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	s := newSpinner("Composing")
	s.start()
	// Let it spin briefly
	time.Sleep(50 * time.Millisecond)
	// Should stop cleanly and print success
	s.stopWithSuccess("done")
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	s := newSpinner("Composing")
	s.start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.stopWithError()
}

func TestSpinnerStopOnce_Idempotent(t *testing.T) {
	s := newSpinner("Composing")
	s.start()
	s.stopOnce()
	// Second call must not panic on a closed channel
	s.stopOnce()
	<-s.done
}
