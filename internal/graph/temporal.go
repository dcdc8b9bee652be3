package graph

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Trend classifies how an entity's mention rate changed across the window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// TemporalPattern summarizes when an entity was mentioned inside the
// trailing window.
type TemporalPattern struct {
	Entity       Entity    `json:"entity"`
	FirstMention time.Time `json:"first_mention"`
	LastMention  time.Time `json:"last_mention"`
	MentionCount int       `json:"mention_count"`
	PeakDay      string    `json:"peak_day"` // YYYY-MM-DD with the most mentions
	Trend        Trend     `json:"trend"`
}

// trendRatio is the imbalance between window halves that counts as a trend.
const trendRatio = 1.5

// TemporalPatterns computes mention trends for every entity referenced in
// the trailing window. entityType narrows the scan to one type; empty means
// all. days below 1 defaults to 30. Results are ordered by mention count,
// most active first.
//
// The trend splits the window at its midpoint: increasing when the second
// half holds more than 1.5x the first half's mentions, decreasing for the
// inverse, stable otherwise.
func (e *Engine) TemporalPatterns(ctx context.Context, entityType EntityType, days int) ([]TemporalPattern, error) {
	if days <= 0 {
		days = 30
	}

	var entities []Entity
	var err error
	if entityType != "" {
		entities, err = e.store.EntitiesByType(ctx, entityType)
	} else {
		entities, err = e.store.AllEntities(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("temporal patterns: %w", err)
	}
	byID := make(map[string]Entity, len(entities))
	for _, ent := range entities {
		byID[ent.ID] = ent
	}

	refs, err := e.store.AllReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("temporal patterns: %w", err)
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -days)
	midpoint := windowStart.Add(now.Sub(windowStart) / 2)

	type tally struct {
		first, last time.Time
		count       int
		firstHalf   int
		secondHalf  int
		byDay       map[string]int
	}
	tallies := make(map[string]*tally)

	for _, r := range refs {
		if r.ExtractedAt.Before(windowStart) || r.ExtractedAt.After(now) {
			continue
		}
		if _, ok := byID[r.EntityID]; !ok {
			continue
		}
		t := tallies[r.EntityID]
		if t == nil {
			t = &tally{first: r.ExtractedAt, last: r.ExtractedAt, byDay: make(map[string]int)}
			tallies[r.EntityID] = t
		}
		if r.ExtractedAt.Before(t.first) {
			t.first = r.ExtractedAt
		}
		if r.ExtractedAt.After(t.last) {
			t.last = r.ExtractedAt
		}
		t.count++
		if r.ExtractedAt.Before(midpoint) {
			t.firstHalf++
		} else {
			t.secondHalf++
		}
		t.byDay[r.ExtractedAt.Format("2006-01-02")]++
	}

	var patterns []TemporalPattern
	for id, t := range tallies {
		peakDay := ""
		peak := 0
		for day, n := range t.byDay {
			if n > peak || (n == peak && day < peakDay) {
				peakDay = day
				peak = n
			}
		}

		trend := TrendStable
		switch {
		case float64(t.secondHalf) > trendRatio*float64(t.firstHalf):
			trend = TrendIncreasing
		case float64(t.firstHalf) > trendRatio*float64(t.secondHalf):
			trend = TrendDecreasing
		}

		patterns = append(patterns, TemporalPattern{
			Entity:       byID[id],
			FirstMention: t.first,
			LastMention:  t.last,
			MentionCount: t.count,
			PeakDay:      peakDay,
			Trend:        trend,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].MentionCount != patterns[j].MentionCount {
			return patterns[i].MentionCount > patterns[j].MentionCount
		}
		return patterns[i].Entity.ID < patterns[j].Entity.ID
	})
	return patterns, nil
}
