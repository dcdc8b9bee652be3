package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Johnsonbros/Zeke-sub009/internal/config"
	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/Johnsonbros/Zeke-sub009/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small demo graph into the database",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seedDemo(cmd.Context(), db); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Printf("Seeded demo graph into %s\n", db.Path)
	return nil
}

// seedDemo writes a household-scale fixture: a few people, a project, an
// employer, a grocery habit, and the references tying them across domains.
func seedDemo(ctx context.Context, db *store.DB) error {
	now := time.Now()

	entities := []*graph.Entity{
		{ID: "person-alice", Type: graph.TypePerson, Label: "Alice Chen"},
		{ID: "person-bob", Type: graph.TypePerson, Label: "Bob Rivera"},
		{ID: "topic-phoenix", Type: graph.TypeTopic, Label: "Project Phoenix"},
		{ID: "org-acme", Type: graph.TypeOrganization, Label: "Acme Corp"},
		{ID: "place-office", Type: graph.TypePlace, Label: "Downtown Office"},
		{ID: "event-standup", Type: graph.TypeEvent, Label: "Monday Standup"},
	}
	for _, e := range entities {
		if err := db.PutEntity(ctx, e); err != nil {
			return err
		}
	}

	links := []graph.EntityLink{
		{SourceEntityID: "person-alice", TargetEntityID: "topic-phoenix", RelationshipType: graph.RelCollaboratesOn, Weight: 0.8, LastSeenAt: now},
		{SourceEntityID: "person-bob", TargetEntityID: "topic-phoenix", RelationshipType: graph.RelCollaboratesOn, Weight: 0.7, LastSeenAt: now.AddDate(0, 0, -3)},
		{SourceEntityID: "person-alice", TargetEntityID: "org-acme", RelationshipType: graph.RelWorksAt, Weight: 0.9, LastSeenAt: now.AddDate(0, 0, -1)},
		{SourceEntityID: "person-alice", TargetEntityID: "person-bob", RelationshipType: graph.RelKnows, Weight: 0.6, LastSeenAt: now.AddDate(0, 0, -7)},
		{SourceEntityID: "org-acme", TargetEntityID: "place-office", RelationshipType: graph.RelLocatedIn, Weight: 0.9, LastSeenAt: now.AddDate(0, 0, -14)},
		{SourceEntityID: "person-alice", TargetEntityID: "event-standup", RelationshipType: graph.RelAttended, Weight: 0.5, LastSeenAt: now.AddDate(0, 0, -2)},
	}
	for _, l := range links {
		if err := db.PutLink(ctx, l); err != nil {
			return err
		}
	}

	items := []*graph.DomainItem{
		{Domain: graph.DomainMemory, ItemID: "mem-1", Content: "Alice wants the Phoenix design review moved to Thursday mornings."},
		{Domain: graph.DomainMemory, ItemID: "mem-2", Content: "Bob mentioned Acme is hiring two more engineers for Phoenix."},
		{Domain: graph.DomainTask, ItemID: "task-1", Content: "Send Alice the Phoenix launch checklist."},
		{Domain: graph.DomainGrocery, ItemID: "groc-1", Content: "Oat milk for Alice's coffee."},
		{Domain: graph.DomainContact, ItemID: "cont-1", Content: "Alice Chen, engineering lead at Acme."},
	}
	for _, it := range items {
		if err := db.PutItem(ctx, it); err != nil {
			return err
		}
	}

	refs := []graph.EntityReference{
		{EntityID: "person-alice", Domain: graph.DomainMemory, ItemID: "mem-1", Confidence: 0.95, ExtractedAt: now},
		{EntityID: "person-alice", Domain: graph.DomainTask, ItemID: "task-1", Confidence: 0.9, ExtractedAt: now.AddDate(0, 0, -1)},
		{EntityID: "person-alice", Domain: graph.DomainGrocery, ItemID: "groc-1", Confidence: 0.7, ExtractedAt: now.AddDate(0, 0, -5)},
		{EntityID: "person-alice", Domain: graph.DomainContact, ItemID: "cont-1", Confidence: 1.0, ExtractedAt: now.AddDate(0, 0, -30)},
		{EntityID: "person-bob", Domain: graph.DomainMemory, ItemID: "mem-2", Confidence: 0.9, ExtractedAt: now.AddDate(0, 0, -3)},
		{EntityID: "topic-phoenix", Domain: graph.DomainMemory, ItemID: "mem-1", Confidence: 0.85, ExtractedAt: now},
		{EntityID: "topic-phoenix", Domain: graph.DomainMemory, ItemID: "mem-2", Confidence: 0.85, ExtractedAt: now.AddDate(0, 0, -3)},
		{EntityID: "topic-phoenix", Domain: graph.DomainTask, ItemID: "task-1", Confidence: 0.8, ExtractedAt: now.AddDate(0, 0, -1)},
		{EntityID: "org-acme", Domain: graph.DomainContact, ItemID: "cont-1", Confidence: 0.9, ExtractedAt: now.AddDate(0, 0, -30)},
	}
	for _, r := range refs {
		if err := db.PutReference(ctx, r); err != nil {
			return err
		}
	}

	return nil
}
