package firmtest

import (
	"testing"
	"time"
)

func TestClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewClock()
	var fired []string

	clock.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "b") })

	clock.Advance(500 * time.Millisecond)
	if len(fired) != 0 {
		t.Errorf("Expected no timers to fire, got %v", fired)
	}

	clock.Advance(time.Second)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Errorf("Expected [a b], got %v", fired)
	}
	if clock.Pending() != 1 {
		t.Errorf("Expected 1 pending timer, got %d", clock.Pending())
	}

	clock.Advance(time.Hour)
	if len(fired) != 3 || fired[2] != "c" {
		t.Errorf("Expected c to fire last, got %v", fired)
	}
	if want := time.Unix(0, 0).UTC().Add(time.Hour + 1500*time.Millisecond); !clock.Now().Equal(want) {
		t.Errorf("Expected now to be %v, got %v", want, clock.Now())
	}
}

func TestClockStop(t *testing.T) {
	clock := NewClock()
	fired := false

	timer := clock.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Errorf("Expected first Stop to report true")
	}
	if timer.Stop() {
		t.Errorf("Expected second Stop to report false")
	}

	clock.Advance(time.Minute)
	if fired {
		t.Errorf("Expected stopped timer not to fire")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", clock.Pending())
	}
}

func TestClockTimerScheduledWhileFiring(t *testing.T) {
	clock := NewClock()
	var fired []int

	clock.AfterFunc(time.Second, func() {
		fired = append(fired, 1)
		clock.AfterFunc(time.Second, func() { fired = append(fired, 2) })
	})

	clock.Advance(2 * time.Second)
	if len(fired) != 2 {
		t.Errorf("Expected chained timer to fire within the same advance, got %v", fired)
	}

	done := clock.AfterFunc(0, func() {})
	clock.Advance(0)
	if done.Stop() {
		t.Errorf("Expected Stop after firing to report false")
	}
}
