package content

import "testing"

func TestRelatedRanksByTagOverlap(t *testing.T) {
	a := proj("a", "A", "ai", "ml", "research")
	b := proj("b", "B", "ml", "research")
	c := proj("c", "C", "web")

	got := Related(a, []*Project{b, c}, 3)
	if len(got) != 1 || got[0].Slug != "b" {
		t.Fatalf("expected only B related, got %v", got)
	}
}

func TestRelatedIdenticalTagSetOutranksPartialOverlap(t *testing.T) {
	// score(A, B) with tags {ai, ml, research} vs {ml, research} is 2/3;
	// an identical non-empty tag set scores 1.0 and must rank above it.
	a := proj("a", "A", "ai", "ml", "research")
	b := proj("b", "B", "ml", "research")
	twin := proj("twin", "Twin", "ai", "ml", "research")
	got := Related(a, []*Project{b, twin}, 3)
	if len(got) != 2 || got[0].Slug != "twin" || got[1].Slug != "b" {
		t.Fatalf("expected identical tag set first, got %v", got)
	}
}

func TestRelatedExcludesSelf(t *testing.T) {
	a := proj("a", "A", "go")
	pool := []*Project{a, proj("b", "B", "go")}
	got := Related(a, pool, 3)
	for _, item := range got {
		if item.Slug == "a" {
			t.Fatal("related result contains the current item")
		}
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 related item, got %d", len(got))
	}
}

func TestRelatedEmptyCurrentTags(t *testing.T) {
	a := proj("a", "A")
	pool := []*Project{proj("b", "B", "go"), proj("c", "C")}
	if got := Related(a, pool, 3); len(got) != 0 {
		t.Fatalf("expected empty result for untagged current item, got %d", len(got))
	}
}

func TestRelatedBothEmptyNoPanic(t *testing.T) {
	a := proj("a", "A")
	pool := []*Project{proj("b", "B")}
	if got := Related(a, pool, 3); len(got) != 0 {
		t.Fatalf("expected no related items, got %d", len(got))
	}
}

func TestRelatedCaseInsensitiveTags(t *testing.T) {
	a := proj("a", "A", "Go", "WEB")
	b := proj("b", "B", "go", "web")
	got := Related(a, []*Project{b}, 3)
	if len(got) != 1 {
		t.Fatalf("expected case-insensitive tag match, got %d items", len(got))
	}
}

func TestRelatedDefaultLimitThree(t *testing.T) {
	a := proj("a", "A", "go")
	pool := []*Project{
		proj("b", "B", "go"),
		proj("c", "C", "go"),
		proj("d", "D", "go"),
		proj("e", "E", "go"),
	}
	got := Related(a, pool, 0)
	if len(got) != 3 {
		t.Fatalf("expected default limit 3, got %d", len(got))
	}
}

func TestRelatedTiesKeepPoolOrder(t *testing.T) {
	a := proj("a", "A", "go")
	b := proj("b", "B", "go")
	c := proj("c", "C", "go")
	got := Related(a, []*Project{b, c}, 3)
	if len(got) != 2 || got[0].Slug != "b" || got[1].Slug != "c" {
		t.Fatalf("ties must keep pool order, got %v", got)
	}
}
