package graph

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

// failingStore errors on the label-match stage to force the bundle fallback.
type failingStore struct {
	*fakeStore
}

func (f *failingStore) EntitiesByLabel(_ context.Context, _ string, _ int) ([]Entity, error) {
	return nil, errors.New("disk gone")
}

func TestContextBundleSections(t *testing.T) {
	f := seedAliceGraph(t)
	e := New(f)
	e.SetResolver(&fakeResolver{items: map[string]DomainItem{
		"contact|contact-1": {Domain: DomainContact, ItemID: "contact-1", Content: "Alice Smith", CreatedAt: time.Now()},
	}})

	text := e.ContextBundle(context.Background(), "Alice", 2000)

	for _, want := range []string{"Entities:", "Cross-domain connections:", "Related items:", "Alice"} {
		if !strings.Contains(text, want) {
			t.Errorf("bundle missing %q:\n%s", want, text)
		}
	}
}

func TestContextBundleLengthBound(t *testing.T) {
	f := newFakeStore()
	f.addEntity("hub", TypeTopic, "Meetings")
	for i := 0; i < 26; i++ {
		id := string(rune('a' + i))
		f.addEntity(id, TypePerson, "A person with a fairly long display label number "+id)
		f.addLink("hub", id, RelAttended, 0.95)
	}
	e := New(f)

	maxTokens := 50
	text := e.ContextBundle(context.Background(), "Meetings", maxTokens)

	limit := maxTokens*4 + len(truncationMarker)
	if len(text) > limit {
		t.Errorf("bundle length %d exceeds %d", len(text), limit)
	}
	if !strings.HasSuffix(text, truncationMarker) {
		t.Error("truncated bundle should end with the marker")
	}
}

func TestContextBundleTruncationKeepsValidUTF8(t *testing.T) {
	f := newFakeStore()
	f.addEntity("hub", TypeTopic, "Réunions")
	for i := 0; i < 26; i++ {
		id := string(rune('a' + i))
		f.addEntity(id, TypePerson, "Personne à l'étiquette plutôt longue numéro "+id)
		f.addLink("hub", id, RelAttended, 0.95)
	}
	e := New(f)

	// Sweep budgets so some cut lands inside a multi-byte rune.
	for maxTokens := 20; maxTokens < 40; maxTokens++ {
		text := e.ContextBundle(context.Background(), "Réunions", maxTokens)
		if !utf8.ValidString(text) {
			t.Fatalf("bundle at budget %d is not valid UTF-8: %q", maxTokens, text)
		}
		if len(text) > maxTokens*4+len(truncationMarker) {
			t.Errorf("bundle at budget %d exceeds limit: %d", maxTokens, len(text))
		}
	}
}

func TestOneLineCutsAtRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 150) // 300 bytes, boundary at 200 splits a rune
	got := oneLine(long)

	if !utf8.ValidString(got) {
		t.Fatalf("oneLine output is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Error("long content should end with ellipsis")
	}
	if len(got) > 200+len("…") {
		t.Errorf("oneLine output %d bytes, want <= %d", len(got), 200+len("…"))
	}

	short := "petite note"
	if oneLine(short) != short {
		t.Errorf("short content should pass through unchanged")
	}
}

func TestContextBundleFallback(t *testing.T) {
	e := New(&failingStore{newFakeStore()})

	text := e.ContextBundle(context.Background(), "anything", 2000)
	if !strings.Contains(text, "unavailable") {
		t.Errorf("fallback bundle = %q", text)
	}
}

func TestContextBundleDefaultBudget(t *testing.T) {
	e := New(seedAliceGraph(t))

	text := e.ContextBundle(context.Background(), "Alice", 0)
	if len(text) > DefaultContextTokens*4+len(truncationMarker) {
		t.Errorf("default budget exceeded: %d", len(text))
	}
	if text == "" {
		t.Error("expected non-empty bundle")
	}
}
