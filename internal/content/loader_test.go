package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newTestStore creates a store over a temp content root with the three
// kind directories present but empty.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	for _, kind := range Kinds() {
		if err := os.MkdirAll(filepath.Join(root, kind.Dir()), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return NewStore(root), root
}

func projectFile(title, date string, tags ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if title != "" {
		b.WriteString("title: " + title + "\n")
	}
	b.WriteString("description: about " + title + "\n")
	if date != "" {
		b.WriteString("date: " + date + "\n")
	}
	if len(tags) > 0 {
		b.WriteString("tags: [" + strings.Join(tags, ", ") + "]\n")
	}
	b.WriteString("status: completed\n")
	b.WriteString("---\n\nSome body text here.\n")
	return b.String()
}

func TestProjectsSortedByDateDescending(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "old.md"), projectFile("Old", "2022-03-01"))
	writeFile(t, filepath.Join(root, "projects", "new.md"), projectFile("New", "2024-06-15"))
	writeFile(t, filepath.Join(root, "projects", "mid.md"), projectFile("Mid", "2023-01-20"))

	projects, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	for i := 0; i < len(projects)-1; i++ {
		if projects[i].Time.Before(projects[i+1].Time) {
			t.Errorf("projects[%d] (%s) older than projects[%d] (%s)",
				i, projects[i].Date, i+1, projects[i+1].Date)
		}
	}
	if projects[0].Slug != "new" {
		t.Errorf("expected newest first, got %q", projects[0].Slug)
	}
}

func TestMalformedDateSortsLast(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "good.md"), projectFile("Good", "2020-01-01"))
	writeFile(t, filepath.Join(root, "projects", "bad.md"), projectFile("Bad", "not-a-date"))

	projects, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[1].Slug != "bad" {
		t.Errorf("expected undated item last, got order %q, %q", projects[0].Slug, projects[1].Slug)
	}
	if projects[1].Date != "not-a-date" {
		t.Errorf("raw date string should be preserved, got %q", projects[1].Date)
	}
}

func TestLoaderIdempotent(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "a.md"), projectFile("A", "2024-01-01", "go"))
	writeFile(t, filepath.Join(root, "projects", "b.md"), projectFile("B", "2023-01-01", "web"))

	first, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Slug != b.Slug || a.Title != b.Title || a.WordCount != b.WordCount ||
			a.ReadingTime != b.ReadingTime || a.URL != b.URL {
			t.Errorf("item %d differs between loads: %+v vs %+v", i, a.Meta, b.Meta)
		}
	}
}

func TestSlugRoundTrip(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "alpha.md"), projectFile("Alpha", "2024-01-01"))
	writeFile(t, filepath.Join(root, "projects", "beta.md"), projectFile("Beta", "2023-01-01"))

	projects, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range projects {
		got, err := BySlug(projects, p.Slug)
		if err != nil {
			t.Fatalf("BySlug(%q): %v", p.Slug, err)
		}
		if got != p {
			t.Errorf("BySlug(%q) returned a different item", p.Slug)
		}
	}
}

func TestDerivedFields(t *testing.T) {
	s, root := newTestStore(t)
	body := strings.TrimSpace(strings.Repeat("word ", 400))
	writeFile(t, filepath.Join(root, "blog", "my-post.md"),
		"---\ntitle: My Post\ndate: 2024-05-01\n---\n"+body+"\n")

	post, err := s.BlogPost("my-post")
	if err != nil {
		t.Fatal(err)
	}
	if post.WordCount != 400 {
		t.Errorf("WordCount = %d, want 400", post.WordCount)
	}
	if post.ReadingTime != "2 min read" {
		t.Errorf("ReadingTime = %q, want %q", post.ReadingTime, "2 min read")
	}
	if post.URL != "/blog/my-post" {
		t.Errorf("URL = %q, want /blog/my-post", post.URL)
	}
	if post.Slug != "my-post" {
		t.Errorf("Slug = %q, want my-post", post.Slug)
	}
	if !strings.Contains(string(post.Body), "word") {
		t.Errorf("rendered body missing content")
	}
}

func TestTitleFallbackFromFilename(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "blog", "my-first-post.md"),
		"---\ndate: 2024-01-01\n---\n\nbody\n")

	post, err := s.BlogPost("my-first-post")
	if err != nil {
		t.Fatal(err)
	}
	if post.Title != "My First Post" {
		t.Errorf("Title = %q, want %q", post.Title, "My First Post")
	}
}

func TestUnparsableFileDroppedFromListing(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "good.md"), projectFile("Good", "2024-01-01"))
	writeFile(t, filepath.Join(root, "projects", "broken.md"),
		"---\ntitle: [unclosed\n---\n\nbody\n")

	projects, err := s.Projects()
	if err != nil {
		t.Fatalf("one bad file must not break the listing: %v", err)
	}
	if len(projects) != 1 || projects[0].Slug != "good" {
		t.Fatalf("expected only the good project, got %d items", len(projects))
	}
}

func TestCorruptFileBySlugReportsNotFound(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "broken.md"),
		"---\ntitle: [unclosed\n---\n\nbody\n")

	_, err := s.Project("broken")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for corrupt file, got %v", err)
	}
}

func TestMissingSlugReportsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Project("does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMissingDirectoryUnavailable(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope"))
	_, err := s.Projects()
	if !errors.Is(err, ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
}

func TestEmptyDirectoryIsValidEmptyResult(t *testing.T) {
	s, _ := newTestStore(t)
	projects, err := s.Projects()
	if err != nil {
		t.Fatalf("empty directory must not error: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected empty result, got %d items", len(projects))
	}
}

func TestUnpublishedPostExcludedFromListingButFetchable(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "blog", "live.md"),
		"---\ntitle: Live\ndate: 2024-01-02\n---\n\nbody\n")
	writeFile(t, filepath.Join(root, "blog", "draft.md"),
		"---\ntitle: Draft\ndate: 2024-01-03\npublished: false\n---\n\nbody\n")

	posts, err := s.BlogPosts()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range posts {
		if p.Slug == "draft" {
			t.Fatal("unpublished post appeared in listing")
		}
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 published post, got %d", len(posts))
	}

	draft, err := s.BlogPost("draft")
	if err != nil {
		t.Fatalf("draft should resolve by direct slug: %v", err)
	}
	if draft.IsPublished() {
		t.Error("draft should report unpublished")
	}
}

func TestTOMLFrontmatter(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "toml-proj.md"),
		"+++\ntitle = \"Toml Project\"\ndate = \"2024-02-02\"\ntags = [\"go\", \"cli\"]\nstatus = \"in-progress\"\n+++\n\nbody text\n")

	p, err := s.Project("toml-proj")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Toml Project" {
		t.Errorf("Title = %q", p.Title)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "go" {
		t.Errorf("Tags = %v", p.Tags)
	}
	if p.Status != ProjectInProgress {
		t.Errorf("Status = %q", p.Status)
	}
}

func TestTOMLScalarCategoryDropsFile(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "list-form.md"),
		"+++\ntitle = \"List Form\"\ndate = \"2024-02-02\"\ncategory = [\"web\"]\n+++\n\nbody\n")
	writeFile(t, filepath.Join(root, "projects", "scalar-form.md"),
		"+++\ntitle = \"Scalar Form\"\ndate = \"2024-02-02\"\ncategory = \"web\"\n+++\n\nbody\n")

	projects, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	// Scalar coercion is YAML-only; the TOML scalar form is a parse
	// error and the file is dropped like any other unparsable file.
	if len(projects) != 1 || projects[0].Slug != "list-form" {
		t.Fatalf("expected only the array-form project, got %d items", len(projects))
	}
}

func TestPaperAbstractBecomesDescription(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "research", "paper.md"),
		"---\ntitle: A Paper\nabstract: We study things.\ndate: 2024-03-03\nauthors: [Someone]\nstatus: preprint\n---\n\nbody\n")

	paper, err := s.ResearchPaper("paper")
	if err != nil {
		t.Fatal(err)
	}
	if paper.Description != "We study things." {
		t.Errorf("Description = %q, want abstract mirrored", paper.Description)
	}
	if paper.Status != PaperPreprint {
		t.Errorf("Status = %q", paper.Status)
	}
}

func TestDuplicateSlugFirstMatchWins(t *testing.T) {
	s, root := newTestStore(t)
	writeFile(t, filepath.Join(root, "projects", "dup.md"), projectFile("From MD", "2024-01-01"))
	writeFile(t, filepath.Join(root, "projects", "dup.mdx"), projectFile("From MDX", "2024-01-01"))

	projects, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected duplicate slug collapsed to one item, got %d", len(projects))
	}
}

func TestReadingTimeRounding(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "0 min read"},
		{1, "1 min read"},
		{200, "1 min read"},
		{201, "2 min read"},
		{400, "2 min read"},
		{401, "3 min read"},
	}
	for _, tt := range tests {
		if got := readingTime(tt.words); got != tt.want {
			t.Errorf("readingTime(%d) = %q, want %q", tt.words, got, tt.want)
		}
	}
}

func TestParseDateFormats(t *testing.T) {
	for _, raw := range []string{
		"2024-01-02",
		"2024-01-02T10:30:00",
		"2024-01-02 10:30:00",
		"2024-01-02T10:30:00Z",
	} {
		if parseDate(raw).IsZero() {
			t.Errorf("parseDate(%q) failed", raw)
		}
	}
	if !parseDate("garbage").IsZero() {
		t.Error("parseDate should yield zero time for garbage input")
	}
}
