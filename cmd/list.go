package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sersergious/folio/internal/content"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"})
	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"})
)

var listCmd = &cobra.Command{
	Use:   "list <projects|blog|research>",
	Short: "Lists a content collection, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, c := newStore()
		if c != nil {
			defer c.Close()
		}

		switch content.Kind(args[0]) {
		case content.KindProjects:
			items, err := store.Projects()
			if err != nil {
				return err
			}
			printItems(asItems(items))
		case content.KindBlog:
			items, err := store.BlogPosts()
			if err != nil {
				return err
			}
			printItems(asItems(items))
		case content.KindResearch:
			items, err := store.ResearchPapers()
			if err != nil {
				return err
			}
			printItems(asItems(items))
		default:
			return fmt.Errorf("unknown content kind %q (valid: projects, blog, research)", args[0])
		}
		return nil
	},
}

func asItems[T content.Item](in []T) []content.Item {
	out := make([]content.Item, len(in))
	for i, it := range in {
		out[i] = it
	}
	return out
}

func printItems(items []content.Item) {
	if len(items) == 0 {
		fmt.Println(dimStyle.Render("no content yet"))
		return
	}
	for _, it := range items {
		m := it.Info()
		when := m.Date
		if !m.Time.IsZero() {
			when = humanize.Time(m.Time)
		}
		fmt.Println(titleStyle.Render(m.Title))
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %s · %s · %s", when, m.ReadingTime, m.URL)))
		if len(m.Tags) > 0 {
			tags := make([]string, len(m.Tags))
			for i, t := range m.Tags {
				tags[i] = "#" + t
			}
			fmt.Println(tagStyle.Render("  " + strings.Join(tags, " ")))
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
