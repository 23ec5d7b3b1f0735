package content

import (
	"html/template"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Kind identifies a content collection with its own schema and directory.
type Kind string

const (
	KindProjects Kind = "projects"
	KindBlog     Kind = "blog"
	KindResearch Kind = "research"
)

// Kinds returns all content kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindProjects, KindBlog, KindResearch}
}

// Dir returns the subdirectory of the content root holding this kind.
func (k Kind) Dir() string { return string(k) }

// Meta holds the fields every content kind shares, plus the fields the
// loader derives from the source file. Derived fields carry no yaml tag;
// they are never read from frontmatter.
type Meta struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Date        string     `json:"date" yaml:"date"`
	Tags        StringList `json:"tags" yaml:"tags"`
	Featured    bool       `json:"featured" yaml:"featured"`

	Slug        string        `json:"slug" yaml:"-"`
	Time        time.Time     `json:"-" yaml:"-"`
	WordCount   int           `json:"wordCount" yaml:"-"`
	ReadingTime string        `json:"readingTime" yaml:"-"`
	URL         string        `json:"url" yaml:"-"`
	Body        template.HTML `json:"body" yaml:"-"`
	RawBody     string        `json:"-" yaml:"-"`
}

// Info exposes the shared metadata; it makes every entity an Item.
func (m *Meta) Info() *Meta { return m }

// Item is any loaded content entity.
type Item interface {
	Info() *Meta
}

// StringList is a []string that also accepts a single scalar in YAML
// frontmatter, so `category: web` and `category: [web, tooling]` both load.
// The scalar form is YAML-only; TOML frontmatter must use an array.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		if one == "" {
			*s = nil
			return nil
		}
		*s = StringList{one}
		return nil
	}
	var raw []any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	vals, err := cast.ToStringSliceE(raw)
	if err != nil {
		return err
	}
	*s = vals
	return nil
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectArchived   ProjectStatus = "archived"
)

// Project is a portfolio project entry.
type Project struct {
	Meta       `yaml:",inline"`
	Categories StringList    `json:"category" yaml:"category"`
	Status     ProjectStatus `json:"status" yaml:"status"`
	TechStack  []string      `json:"techStack" yaml:"techStack"`
	GitHub     string        `json:"github,omitempty" yaml:"github"`
	Demo       string        `json:"demo,omitempty" yaml:"demo"`
	Image      string        `json:"image,omitempty" yaml:"image"`
}

// Author is the byline of a blog post.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar"`
}

// BlogPost is a blog entry. Published defaults to true when the
// frontmatter omits it.
type BlogPost struct {
	Meta      `yaml:",inline"`
	Category  string `json:"category,omitempty" yaml:"category"`
	Author    Author `json:"author" yaml:"author"`
	Published *bool  `json:"published" yaml:"published"`
}

// IsPublished reports whether the post belongs in listings.
func (p *BlogPost) IsPublished() bool {
	return p.Published == nil || *p.Published
}

// PaperStatus is the publication state of a research paper.
type PaperStatus string

const (
	PaperPublished PaperStatus = "published"
	PaperPreprint  PaperStatus = "preprint"
	PaperInReview  PaperStatus = "in-review"
	PaperDraft     PaperStatus = "draft"
)

// ResearchPaper is a research publication entry. Its abstract doubles as
// the shared description so search and related-content treat all kinds
// uniformly.
type ResearchPaper struct {
	Meta       `yaml:",inline"`
	Abstract   string      `json:"abstract" yaml:"abstract"`
	Authors    []string    `json:"authors" yaml:"authors"`
	Journal    string      `json:"journal,omitempty" yaml:"journal"`
	Conference string      `json:"conference,omitempty" yaml:"conference"`
	DOI        string      `json:"doi,omitempty" yaml:"doi"`
	Arxiv      string      `json:"arxiv,omitempty" yaml:"arxiv"`
	PDF        string      `json:"pdf,omitempty" yaml:"pdf"`
	Status     PaperStatus `json:"status" yaml:"status"`
	Citations  int         `json:"citations,omitempty" yaml:"citations"`
	Awards     []string    `json:"awards,omitempty" yaml:"awards"`
}
