package content

import (
	"io"

	"github.com/adrg/frontmatter"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Frontmatter delimiters: "---" fences YAML, "+++" fences TOML. Any
// frontmatter key a kind's struct does not declare is ignored, so files
// may carry extra metadata without breaking the loader. List-valued
// fields in TOML must be arrays; StringList's scalar coercion only
// applies on the YAML path.
var frontmatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// parseFrontmatter splits a content file into typed metadata and the
// remaining markdown body.
func parseFrontmatter(r io.Reader, v any) (body []byte, err error) {
	return frontmatter.Parse(r, v, frontmatterFormats...)
}
