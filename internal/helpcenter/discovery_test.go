package helpcenter

import (
	"testing"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
)

func TestRelatedDeduplicatesExplicitList(t *testing.T) {
	svc, _ := newTestService(t)

	// formations lists players twice plus a dangling reference; the result
	// holds players once and backfills by shared tags.
	related := svc.Related("formations", 10)
	ids := docIDs(related)

	seen := map[string]int{}
	for _, id := range ids {
		seen[id]++
		if id == "formations" {
			t.Error("source document appears in its own related list")
		}
		if id == "missing-doc" {
			t.Error("dangling related reference surfaced")
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("%s appears %d times", id, n)
		}
	}
	if ids[0] != "players" {
		t.Errorf("explicit related doc not first: %v", ids)
	}
}

func TestRelatedBackfillsBySharedTags(t *testing.T) {
	svc, _ := newTestService(t)

	related := svc.Related("formations", 10)
	found := false
	for _, d := range related {
		if d.ID == "challenges" {
			found = true
		}
		if d.ID == "draft" {
			t.Error("unpublished document backfilled")
		}
	}
	// challenges shares the "tactics" tag with formations.
	if !found {
		t.Errorf("tag backfill missing challenges: %v", docIDs(related))
	}
}

func TestRelatedHonorsLimit(t *testing.T) {
	svc, _ := newTestService(t)

	if got := svc.Related("formations", 1); len(got) != 1 {
		t.Errorf("limit 1 returned %d docs", len(got))
	}
	if got := svc.Related("formations", 0); len(got) != 0 {
		t.Errorf("limit 0 returned %d docs", len(got))
	}
	if got := svc.Related("missing", 5); len(got) != 0 {
		t.Errorf("unknown source returned %d docs", len(got))
	}
}

func TestPopularOrdersByViews(t *testing.T) {
	svc, _ := newTestService(t)

	// Views move only through GetDocument.
	svc.GetDocument("challenges")
	svc.GetDocument("challenges")
	svc.GetDocument("players")

	docs := svc.Popular(10)
	ids := docIDs(docs)
	if len(ids) != 3 {
		t.Fatalf("popular count = %d, want 3 published docs", len(ids))
	}
	if ids[0] != "challenges" || ids[1] != "players" {
		t.Errorf("popular order = %v", ids)
	}

	if got := svc.Popular(2); len(got) != 2 {
		t.Errorf("limit 2 returned %d docs", len(got))
	}
}

func TestRecentOrdersByLastUpdated(t *testing.T) {
	svc, _ := newTestService(t)

	svc.UpdateDocument(t.Context(), "players", docstore.DocumentUpdate{
		Content: strPtr("Touched most recently."),
	})

	docs := svc.Recent(10)
	if len(docs) == 0 || docs[0].ID != "players" {
		t.Errorf("recent order = %v, want players first", docIDs(docs))
	}
	for _, d := range docs {
		if d.ID == "draft" {
			t.Error("unpublished document listed in recent")
		}
	}
}

func TestCategoriesCountsPublishedOnly(t *testing.T) {
	svc, _ := newTestService(t)

	counts := svc.Categories()
	want := map[docstore.Category]int{
		docstore.CategoryGuide:     1,
		docstore.CategoryComponent: 1,
		docstore.CategoryTutorial:  1,
	}
	if len(counts) != len(want) {
		t.Fatalf("categories = %v, want %v", counts, want)
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("category %s = %d, want %d", cat, counts[cat], n)
		}
	}
}
