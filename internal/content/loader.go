package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// contentExts are the file extensions the loader recognizes, in lookup
// order for by-slug fetches.
var contentExts = []string{".md", ".mdx", ".markdown"}

// ItemCache is an optional read-through cache for parsed items, keyed by
// source file modification time so a fresh read always reflects the
// latest file state. Implementations must never fail a load: a broken
// cache degrades to re-parsing.
type ItemCache interface {
	Get(kind, slug string, mtime int64) ([]byte, bool)
	Put(kind, slug string, mtime int64, data []byte)
}

// Store resolves content items from a root directory holding one
// subdirectory per kind. It keeps no state between calls: every listing
// re-reads and re-parses the source files (or consults the mtime-keyed
// cache, which is observably equivalent).
type Store struct {
	root     string
	renderer *Renderer
	log      *zap.Logger
	cache    ItemCache
}

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithCache(c ItemCache) Option {
	return func(s *Store) { s.cache = c }
}

func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root:     root,
		renderer: NewRenderer(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the content root directory.
func (s *Store) Root() string { return s.root }

// Projects lists all projects, newest first.
func (s *Store) Projects() ([]*Project, error) {
	return listKind[Project, *Project](s, KindProjects)
}

// BlogPosts lists published posts, newest first. Unpublished posts never
// appear in listings; fetch them by slug instead.
func (s *Store) BlogPosts() ([]*BlogPost, error) {
	posts, err := listKind[BlogPost, *BlogPost](s, KindBlog)
	if err != nil {
		return nil, err
	}
	return Filter(posts, (*BlogPost).IsPublished), nil
}

// ResearchPapers lists all papers, newest first.
func (s *Store) ResearchPapers() ([]*ResearchPaper, error) {
	return listKind[ResearchPaper, *ResearchPaper](s, KindResearch)
}

// Project fetches one project by slug.
func (s *Store) Project(slug string) (*Project, error) {
	return loadOne[Project, *Project](s, KindProjects, slug)
}

// BlogPost fetches one post by slug. Unpublished posts resolve here so
// drafts can be previewed at their final URL.
func (s *Store) BlogPost(slug string) (*BlogPost, error) {
	return loadOne[BlogPost, *BlogPost](s, KindBlog, slug)
}

// ResearchPaper fetches one paper by slug.
func (s *Store) ResearchPaper(slug string) (*ResearchPaper, error) {
	return loadOne[ResearchPaper, *ResearchPaper](s, KindResearch, slug)
}

// entity ties a pointer type to its struct so the loader can allocate
// fresh items generically.
type entity[P any] interface {
	Item
	*P
}

func listKind[P any, T entity[P]](s *Store, kind Kind) ([]T, error) {
	dir := filepath.Join(s.root, kind.Dir())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %v", ErrDirectoryUnavailable, dir, err)
	}

	seen := make(map[string]bool, len(entries))
	items := make([]T, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isContentFile(entry.Name()) {
			continue
		}
		slug := slugFromFilename(entry.Name())
		if seen[slug] {
			// Slug uniqueness is assumed, not enforced: first match wins.
			s.log.Warn("duplicate slug, keeping first match",
				zap.String("kind", kind.Dir()), zap.String("slug", slug))
			continue
		}
		item, err := parseFile[P, T](s, kind, filepath.Join(dir, entry.Name()), slug)
		if err != nil {
			// One bad file must not break the whole listing.
			s.log.Warn("dropping unparsable content file",
				zap.String("kind", kind.Dir()), zap.String("slug", slug), zap.Error(err))
			continue
		}
		seen[slug] = true
		items = append(items, item)
	}

	sortByDateDesc(items)
	return items, nil
}

func loadOne[P any, T entity[P]](s *Store, kind Kind, slug string) (T, error) {
	var zero T
	if slug == "" || slug != filepath.Base(slug) || strings.HasPrefix(slug, ".") {
		return zero, fmt.Errorf("%s/%s: %w", kind.Dir(), slug, ErrNotFound)
	}
	for _, ext := range contentExts {
		path := filepath.Join(s.root, kind.Dir(), slug+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		item, err := parseFile[P, T](s, kind, path, slug)
		if err != nil {
			// A corrupt file behind a slug is reported as not found;
			// the caller does not get parser internals.
			s.log.Warn("content file present but unreadable",
				zap.String("path", path), zap.Error(err))
			return zero, fmt.Errorf("%s/%s: %w", kind.Dir(), slug, ErrNotFound)
		}
		return item, nil
	}
	return zero, fmt.Errorf("%s/%s: %w", kind.Dir(), slug, ErrNotFound)
}

// cachedItem is the stored encoding of a parsed item. The raw body
// travels beside the item because its JSON tag excludes it from API
// responses; a cache hit must still restore every exported field.
type cachedItem struct {
	Item    json.RawMessage `json:"item"`
	RawBody string          `json:"rawBody"`
}

func parseFile[P any, T entity[P]](s *Store, kind Kind, path, slug string) (T, error) {
	var zero T

	var mtime int64
	if s.cache != nil {
		if fi, err := os.Stat(path); err == nil {
			mtime = fi.ModTime().UnixNano()
			if data, ok := s.cache.Get(kind.Dir(), slug, mtime); ok {
				var env cachedItem
				item := T(new(P))
				if err := json.Unmarshal(data, &env); err == nil {
					if err := json.Unmarshal(env.Item, item); err == nil {
						m := item.Info()
						m.RawBody = env.RawBody
						m.Time = parseDate(m.Date)
						return item, nil
					}
				}
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("reading %q: %w", path, err)
	}
	defer f.Close()

	item := T(new(P))
	body, err := parseFrontmatter(f, item)
	if err != nil {
		return zero, fmt.Errorf("parsing frontmatter of %q: %w", path, err)
	}
	if err := s.finalize(item, kind, slug, body); err != nil {
		return zero, fmt.Errorf("finalizing %q: %w", path, err)
	}

	if s.cache != nil && mtime != 0 {
		if data, err := json.Marshal(item); err == nil {
			env, err := json.Marshal(cachedItem{Item: data, RawBody: item.Info().RawBody})
			if err == nil {
				s.cache.Put(kind.Dir(), slug, mtime, env)
			}
		}
	}
	return item, nil
}

// finalize fills the derived metadata fields from the raw body.
func (s *Store) finalize(it Item, kind Kind, slug string, body []byte) error {
	m := it.Info()
	m.Slug = slug
	m.RawBody = string(body)
	m.WordCount = len(strings.Fields(m.RawBody))
	m.ReadingTime = readingTime(m.WordCount)
	m.URL = "/" + kind.Dir() + "/" + slug
	m.Time = parseDate(m.Date)
	if m.Title == "" {
		m.Title = titleFromSlug(slug)
	}
	if p, ok := it.(*ResearchPaper); ok && p.Abstract != "" {
		m.Description = p.Abstract
	}
	html, err := s.renderer.Render(body)
	if err != nil {
		return err
	}
	m.Body = html
	return nil
}

// readingTime formats ceil(words/200) minutes.
func readingTime(words int) string {
	return fmt.Sprintf("%d min read", (words+199)/200)
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate accepts the common ISO-8601 shapes. A malformed date yields
// the zero time, which sorts after every dated item.
func parseDate(raw string) time.Time {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range contentExts {
		if ext == e {
			return true
		}
	}
	return false
}

func slugFromFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

var slugTitleCaser = cases.Title(language.English)

// titleFromSlug turns "my-first-post" into "My First Post" when the
// frontmatter carries no title.
func titleFromSlug(slug string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return slugTitleCaser.String(words)
}

// sortByDateDesc orders newest first; items without a parseable date go
// last, keeping their relative order.
func sortByDateDesc[T Item](items []T) {
	stableSortBy(items, func(a, b T) bool {
		at, bt := a.Info().Time, b.Info().Time
		if at.IsZero() {
			return false
		}
		if bt.IsZero() {
			return true
		}
		return at.After(bt)
	})
}
