package graph

import (
	"math"
	"testing"
	"time"
)

func TestTemporalDecayFresh(t *testing.T) {
	now := time.Now()
	if got := temporalDecayAt(now, 30, now); got != 1.0 {
		t.Errorf("decay at now = %f, want 1.0", got)
	}
	// Future timestamps clamp to 1.0 rather than exceeding it.
	if got := temporalDecayAt(now.Add(time.Hour), 30, now); got != 1.0 {
		t.Errorf("decay of future timestamp = %f, want 1.0", got)
	}
}

func TestTemporalDecayMonotonic(t *testing.T) {
	now := time.Now()
	prev := 1.0
	for days := 1; days <= 400; days *= 2 {
		got := temporalDecayAt(now.AddDate(0, 0, -days), 30, now)
		if got > prev {
			t.Errorf("decay at %d days = %f, greater than %f at fewer days", days, got, prev)
		}
		if got < decayFloor {
			t.Errorf("decay at %d days = %f, below floor %f", days, got, decayFloor)
		}
		prev = got
	}
}

func TestTemporalDecayFloor(t *testing.T) {
	now := time.Now()
	got := temporalDecayAt(now.AddDate(-10, 0, 0), 30, now)
	if got != decayFloor {
		t.Errorf("decay of ancient timestamp = %f, want floor %f", got, decayFloor)
	}
}

func TestTemporalDecayValue(t *testing.T) {
	now := time.Now()
	// exp(-30/30) = e^-1
	got := temporalDecayAt(now.AddDate(0, 0, -30), 30, now)
	want := math.Exp(-1)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("decay at one window = %f, want %f", got, want)
	}
}

func TestEntityScore(t *testing.T) {
	now := time.Now()
	entity := Entity{ID: "e1", Type: TypePerson, Label: "Alice", CreatedAt: now}

	// Fresh link, weight 0.8, depth 1: 0.7 * 0.8 * 1.0
	link := &EntityLink{SourceEntityID: "seed", TargetEntityID: "e1", Weight: 0.8, LastSeenAt: now}
	got := entityScoreAt(entity, link, 1, 30, now)
	want := 0.7 * 0.8
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got, want)
	}

	// No link: default weight 0.5, decays from creation time.
	got = entityScoreAt(entity, nil, 0, 30, now)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("score without link = %f, want 0.5", got)
	}

	// Depth penalty compounds.
	deep := entityScoreAt(entity, link, 3, 30, now)
	if deep >= got {
		t.Errorf("depth 3 score %f should be below depth 0 score %f", deep, got)
	}
}
