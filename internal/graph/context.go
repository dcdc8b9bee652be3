package graph

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultContextTokens bounds a context bundle when the caller passes no
// budget. The bundle is truncated to maxTokens*4 characters, a rough
// 4-chars-per-token estimate.
const DefaultContextTokens = 2000

const truncationMarker = "\n[truncated]"

// ContextBundle renders the unified query result as a bounded plain-text
// block for an LLM prompt: entities, cross-domain connections, items grouped
// by domain, and the summary line. Internal failures produce a minimal
// fallback block instead of an error, since the output feeds a user-facing
// prompt directly.
func (e *Engine) ContextBundle(ctx context.Context, query string, maxTokens int) string {
	if maxTokens <= 0 {
		maxTokens = DefaultContextTokens
	}

	result, err := e.Query(ctx, query, QueryOptions{})
	if err != nil {
		log.Printf("context bundle: query failed: %v", err)
		return fmt.Sprintf("Knowledge graph context for %q is unavailable.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Knowledge graph context for %q\n", query)

	if len(result.Entities) > 0 {
		b.WriteString("\nEntities:\n")
		for _, n := range result.Entities {
			fmt.Fprintf(&b, "- %s (%s, score %.2f)", n.Entity.Label, n.Entity.Type, n.Score)
			if len(n.RelationshipPath) > 0 {
				fmt.Fprintf(&b, " via %s", strings.Join(n.RelationshipPath, " > "))
			}
			b.WriteByte('\n')
		}
	}

	if len(result.Connections) > 0 {
		b.WriteString("\nCross-domain connections:\n")
		for _, c := range result.Connections {
			domains := make([]string, 0, len(c.References))
			for d := range c.References {
				domains = append(domains, string(d))
			}
			sort.Strings(domains)
			fmt.Fprintf(&b, "- %s spans %s (strength %.2f)\n",
				c.Entity.Label, strings.Join(domains, ", "), c.ConnectionStrength)
		}
	}

	if len(result.RelevantItems) > 0 {
		byDomain := make(map[Domain][]RelevantItem)
		for _, it := range result.RelevantItems {
			byDomain[it.Domain] = append(byDomain[it.Domain], it)
		}
		domains := make([]string, 0, len(byDomain))
		for d := range byDomain {
			domains = append(domains, string(d))
		}
		sort.Strings(domains)

		b.WriteString("\nRelated items:\n")
		for _, d := range domains {
			fmt.Fprintf(&b, "[%s]\n", d)
			for _, it := range byDomain[Domain(d)] {
				fmt.Fprintf(&b, "- %s\n", oneLine(it.Content))
			}
		}
	}

	fmt.Fprintf(&b, "\n%s\n", result.QueryContext)

	text := b.String()
	limit := maxTokens * 4
	if len(text) > limit {
		text = cutAtRune(text, limit) + truncationMarker
	}
	return text
}

// oneLine collapses a multi-line item body for the bundle.
func oneLine(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	const max = 200
	if len(s) > max {
		return cutAtRune(s, max) + "…"
	}
	return s
}

// cutAtRune truncates s to at most limit bytes, backing off to a rune
// boundary so the cut never splits a UTF-8 sequence.
func cutAtRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
