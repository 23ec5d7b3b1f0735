// Package site renders the static output: one page per content item,
// list pages per kind, the home page, and the blog feed.
package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sersergious/folio/internal/config"
	"github.com/sersergious/folio/internal/content"
)

const baseLayout = "base.html"

// Data is the site-wide template context.
type Data struct {
	Title            string
	Description      string
	Author           string
	BaseURL          string
	Projects         []*content.Project
	Posts            []*content.BlogPost
	Papers           []*content.ResearchPaper
	FeaturedProjects []*content.Project
	Tags             []string
}

type page struct {
	Site *Data
	Item any
}

type Builder struct {
	cfg   config.Config
	store *content.Store
	log   *zap.Logger
}

func NewBuilder(cfg config.Config, store *content.Store, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{cfg: cfg, store: store, log: log}
}

// Build regenerates the whole site into the output directory.
func (b *Builder) Build() error {
	if err := os.RemoveAll(b.cfg.OutputDir); err != nil {
		return fmt.Errorf("cleaning output dir %q: %w", b.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", b.cfg.OutputDir, err)
	}

	if _, err := os.Stat(b.cfg.StaticDir); err == nil {
		if err := os.CopyFS(b.cfg.OutputDir, os.DirFS(b.cfg.StaticDir)); err != nil {
			return fmt.Errorf("copying static assets: %w", err)
		}
	}

	templates, err := b.loadTemplates()
	if err != nil {
		return err
	}

	data, err := b.collect()
	if err != nil {
		return err
	}

	for _, p := range data.Projects {
		if err := b.renderItem(templates, data, p, "project.html"); err != nil {
			return err
		}
	}
	for _, p := range data.Posts {
		if err := b.renderItem(templates, data, p, "post.html"); err != nil {
			return err
		}
	}
	for _, p := range data.Papers {
		if err := b.renderItem(templates, data, p, "paper.html"); err != nil {
			return err
		}
	}

	for _, kind := range content.Kinds() {
		layout := "list-" + kind.Dir() + ".html"
		if templates.Lookup(layout) == nil {
			b.log.Warn("list layout missing, skipping list page", zap.String("layout", layout))
			continue
		}
		out := filepath.Join(b.cfg.OutputDir, kind.Dir(), "index.html")
		if err := b.renderTo(templates, layout, out, page{Site: data}); err != nil {
			return err
		}
	}

	if templates.Lookup("home.html") != nil {
		out := filepath.Join(b.cfg.OutputDir, "index.html")
		if err := b.renderTo(templates, "home.html", out, page{Site: data}); err != nil {
			return err
		}
	} else {
		b.log.Warn("home.html layout missing, skipping home page")
	}

	if err := b.writeFeed(data); err != nil {
		return err
	}

	b.log.Info("site built",
		zap.Int("projects", len(data.Projects)),
		zap.Int("posts", len(data.Posts)),
		zap.Int("papers", len(data.Papers)),
		zap.String("output", b.cfg.OutputDir))
	return nil
}

func (b *Builder) collect() (*Data, error) {
	projects, err := b.store.Projects()
	if err != nil {
		return nil, err
	}
	posts, err := b.store.BlogPosts()
	if err != nil {
		return nil, err
	}
	papers, err := b.store.ResearchPapers()
	if err != nil {
		return nil, err
	}

	tags := content.UniqueTags(projects)
	tags = append(tags, content.UniqueTags(posts)...)
	tags = append(tags, content.UniqueTags(papers)...)

	return &Data{
		Title:            b.cfg.SiteTitle,
		Description:      b.cfg.SiteDescription,
		Author:           b.cfg.Author,
		BaseURL:          strings.TrimRight(b.cfg.BaseURL, "/"),
		Projects:         projects,
		Posts:            posts,
		Papers:           papers,
		FeaturedProjects: content.Featured(projects, 3),
		Tags:             content.UniqueValues(tags, func(t string) []string { return []string{t} }),
	}, nil
}

// loadTemplates parses base.html and partials first so page layouts can
// override their blocks.
func (b *Builder) loadTemplates() (*template.Template, error) {
	var basePath string
	var partials, layouts []string
	err := filepath.WalkDir(b.cfg.LayoutsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case d.Name() == baseLayout && filepath.Dir(path) == b.cfg.LayoutsDir:
			basePath = path
		case strings.HasPrefix(path, filepath.Join(b.cfg.LayoutsDir, "partials")):
			partials = append(partials, path)
		default:
			layouts = append(layouts, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning layouts dir %q: %w", b.cfg.LayoutsDir, err)
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found in layouts dir %q", baseLayout, b.cfg.LayoutsDir)
	}

	templates, err := template.ParseFiles(append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("parsing base layout and partials: %w", err)
	}
	if len(layouts) > 0 {
		if templates, err = templates.ParseFiles(layouts...); err != nil {
			return nil, fmt.Errorf("parsing page layouts: %w", err)
		}
	}
	return templates, nil
}

func (b *Builder) renderItem(templates *template.Template, data *Data, item content.Item, layout string) error {
	if templates.Lookup(layout) == nil {
		if templates.Lookup("single.html") != nil {
			layout = "single.html"
		} else {
			layout = baseLayout
		}
	}
	out := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(item.Info().URL), "index.html")
	return b.renderTo(templates, layout, out, page{Site: data, Item: item})
}

func (b *Builder) renderTo(templates *template.Template, layout, outPath string, data page) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating %q: %w", filepath.Dir(outPath), err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", outPath, err)
	}
	defer f.Close()
	if err := templates.ExecuteTemplate(f, layout, data); err != nil {
		return fmt.Errorf("executing layout %q for %q: %w", layout, outPath, err)
	}
	return nil
}
