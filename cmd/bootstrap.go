package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sersergious/folio/internal/content"
)

// bootstrapCmd seeds empty content directories with one sample file per
// kind. This is deliberately a separate, explicit command: the read path
// never writes to the content tree.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Creates sample content in empty content directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, kind := range content.Kinds() {
			dir := filepath.Join(appConfig.ContentDir, kind.Dir())
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %q: %w", dir, err)
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("listing %q: %w", dir, err)
			}
			if len(entries) > 0 {
				logger.Info("directory not empty, skipping", zap.String("dir", dir))
				continue
			}
			slug, meta, body := sampleFor(kind)
			if err := writeSample(filepath.Join(dir, slug+".md"), meta, body); err != nil {
				return err
			}
			logger.Info("sample content created",
				zap.String("kind", kind.Dir()), zap.String("slug", slug))
		}
		return nil
	},
}

func writeSample(path string, meta any, body string) error {
	fm, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling frontmatter: %w", err)
	}
	data := "---\n" + string(fm) + "---\n\n" + body + "\n"
	return os.WriteFile(path, []byte(data), 0o644)
}

func sampleFor(kind content.Kind) (slug string, meta any, body string) {
	switch kind {
	case content.KindProjects:
		return "hello-world", struct {
			Title       string   `yaml:"title"`
			Description string   `yaml:"description"`
			Date        string   `yaml:"date"`
			Tags        []string `yaml:"tags"`
			Category    []string `yaml:"category"`
			Status      string   `yaml:"status"`
			TechStack   []string `yaml:"techStack"`
			Featured    bool     `yaml:"featured"`
		}{
			Title:       "Hello World",
			Description: "A sample project entry. Replace it with your own work.",
			Date:        "2024-01-01",
			Tags:        []string{"sample"},
			Category:    []string{"demo"},
			Status:      string(content.ProjectCompleted),
			TechStack:   []string{"go"},
			Featured:    true,
		}, "This is a sample project. Edit or delete this file."
	case content.KindBlog:
		return "first-post", struct {
			Title       string   `yaml:"title"`
			Description string   `yaml:"description"`
			Date        string   `yaml:"date"`
			Tags        []string `yaml:"tags"`
			Author      struct {
				Name string `yaml:"name"`
			} `yaml:"author"`
			Published bool `yaml:"published"`
		}{
			Title:       "First Post",
			Description: "A sample blog post. Replace it with your own writing.",
			Date:        "2024-01-01",
			Tags:        []string{"sample"},
			Author: struct {
				Name string `yaml:"name"`
			}{Name: "Your Name"},
			Published: true,
		}, "This is a sample post. Edit or delete this file."
	default:
		return "sample-paper", struct {
			Title    string   `yaml:"title"`
			Abstract string   `yaml:"abstract"`
			Date     string   `yaml:"date"`
			Tags     []string `yaml:"tags"`
			Authors  []string `yaml:"authors"`
			Status   string   `yaml:"status"`
		}{
			Title:    "Sample Paper",
			Abstract: "A sample research entry. Replace it with your own publications.",
			Date:     "2024-01-01",
			Tags:     []string{"sample"},
			Authors:  []string{"You"},
			Status:   string(content.PaperDraft),
		}, "This is a sample paper. Edit or delete this file."
	}
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
