package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sersergious/folio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads every content collection, renders each item
and list page through the layouts, copies static assets, and writes the
site to the configured output directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, c := newStore()
		if c != nil {
			defer c.Close()
		}
		return site.NewBuilder(appConfig, store, logger).Build()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
