package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sersergious/folio/internal/cache"
	"github.com/sersergious/folio/internal/config"
	"github.com/sersergious/folio/internal/content"
)

var (
	cfgFile   string
	appConfig config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio site engine",
	Long: `Folio loads typed content collections (projects, blog posts, research
papers) from frontmatter files, derives their metadata, and serves them
as a static site or a JSON API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

func Execute(log *zap.Logger) {
	logger = log
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
}

func initializeConfig() error {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	return nil
}

// newStore builds the content store, attaching the parse cache when
// enabled. The returned cache is nil when caching is off or unavailable;
// callers close it when done.
func newStore() (*content.Store, *cache.Cache) {
	opts := []content.Option{content.WithLogger(logger)}

	var c *cache.Cache
	if appConfig.Cache.Enabled {
		path := appConfig.Cache.Path
		if path == "" {
			path = cache.DefaultPath()
		}
		opened, err := cache.Open(path, logger)
		if err != nil {
			// A broken cache never blocks content resolution.
			logger.Warn("parse cache unavailable, continuing without it", zap.Error(err))
		} else {
			c = opened
			opts = append(opts, content.WithCache(c))
		}
	}

	return content.NewStore(appConfig.ContentDir, opts...), c
}
