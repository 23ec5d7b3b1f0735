package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sersergious/folio/internal/content"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches titles, descriptions, and tags across all collections",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		store, c := newStore()
		if c != nil {
			defer c.Close()
		}

		projects, err := store.Projects()
		if err != nil {
			return err
		}
		posts, err := store.BlogPosts()
		if err != nil {
			return err
		}
		papers, err := store.ResearchPapers()
		if err != nil {
			return err
		}

		total := 0
		for _, section := range []struct {
			name  string
			items []content.Item
		}{
			{"projects", asItems(content.Search(projects, query, searchLimit))},
			{"blog", asItems(content.Search(posts, query, searchLimit))},
			{"research", asItems(content.Search(papers, query, searchLimit))},
		} {
			if len(section.items) == 0 {
				continue
			}
			total += len(section.items)
			fmt.Println(titleStyle.Render(section.name))
			printItems(section.items)
		}
		if total == 0 {
			fmt.Println(dimStyle.Render(fmt.Sprintf("no results for %q", query)))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum results per collection")
	rootCmd.AddCommand(searchCmd)
}
