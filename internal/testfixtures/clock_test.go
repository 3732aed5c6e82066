package testfixtures

import (
	"testing"
	"time"
)

func TestClock_SetAndAdvance(t *testing.T) {
	t.Parallel()

	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected the reference baseline, got %v", clock.Now())
	}

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(ReferenceTime().Add(90 * time.Minute)) {
		t.Fatalf("unexpected advanced time: %v", updated)
	}

	target := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	clock.Set(target)
	if !clock.Now().Equal(target) {
		t.Fatalf("Set did not take effect: %v", clock.Now())
	}
}

func TestIDGenerator_Sequence(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("fixture")
	if got := gen.Next(); got != "fixture-1" {
		t.Fatalf("unexpected first id %q", got)
	}
	if got := gen.Next(); got != "fixture-2" {
		t.Fatalf("unexpected second id %q", got)
	}

	next := NewIDGenerator("").NextFunc()
	if got := next(); got != "id-1" {
		t.Fatalf("unexpected default-prefix id %q", got)
	}
}
