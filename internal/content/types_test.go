package content

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStringListScalar(t *testing.T) {
	var out struct {
		Category StringList `yaml:"category"`
	}
	if err := yaml.Unmarshal([]byte("category: web\n"), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Category) != 1 || out.Category[0] != "web" {
		t.Errorf("got %v, want [web]", out.Category)
	}
}

func TestStringListScalarWithSpaces(t *testing.T) {
	var out struct {
		Category StringList `yaml:"category"`
	}
	if err := yaml.Unmarshal([]byte("category: web development\n"), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Category) != 1 || out.Category[0] != "web development" {
		t.Errorf("scalar with spaces must stay one value, got %v", out.Category)
	}
}

func TestStringListSequence(t *testing.T) {
	var out struct {
		Category StringList `yaml:"category"`
	}
	if err := yaml.Unmarshal([]byte("category:\n  - web\n  - tooling\n"), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Category) != 2 || out.Category[0] != "web" || out.Category[1] != "tooling" {
		t.Errorf("got %v", out.Category)
	}
}

func TestStringListAbsent(t *testing.T) {
	var out struct {
		Category StringList `yaml:"category"`
	}
	if err := yaml.Unmarshal([]byte("title: x\n"), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Category) != 0 {
		t.Errorf("absent field must stay empty, got %v", out.Category)
	}
}

func TestStringListMixedScalars(t *testing.T) {
	var out struct {
		Tags StringList `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte("tags: [go, 2024]\n"), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Tags) != 2 || out.Tags[1] != "2024" {
		t.Errorf("got %v", out.Tags)
	}
}

func TestBlogPostPublishedDefaultsTrue(t *testing.T) {
	p := &BlogPost{}
	if !p.IsPublished() {
		t.Error("missing published field must default to published")
	}
	f := false
	p.Published = &f
	if p.IsPublished() {
		t.Error("published: false must report unpublished")
	}
}

func TestTagOrderPreserved(t *testing.T) {
	var out struct {
		Tags StringList `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte("tags: [zeta, alpha, mid]\n"), &out); err != nil {
		t.Fatal(err)
	}
	if out.Tags[0] != "zeta" || out.Tags[1] != "alpha" || out.Tags[2] != "mid" {
		t.Errorf("tag order must match authored order, got %v", out.Tags)
	}
}
