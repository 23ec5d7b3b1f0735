package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sersergious/folio/internal/server"
	"github.com/sersergious/folio/internal/site"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site and its JSON API, rebuilding on changes",
	Long: `The serve command performs an initial build, then serves the output
directory alongside a JSON API over the content collections. Content,
layout, and static directories are watched; changes trigger a rebuild
and invalidate the parse cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, c := newStore()
		if c != nil {
			defer c.Close()
		}
		builder := site.NewBuilder(appConfig, store, logger)

		logger.Info("performing initial build")
		if err := builder.Build(); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer watcher.Close()

		go func() {
			var rebuild *time.Timer
			const debounce = 500 * time.Millisecond

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
						!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
						continue
					}
					logger.Info("change detected",
						zap.String("path", event.Name), zap.String("op", event.Op.String()))

					// New subdirectories are not watched automatically.
					if event.Has(fsnotify.Create) && isDir(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn("watching new directory failed",
								zap.String("path", event.Name), zap.Error(err))
						}
					}

					if rebuild != nil {
						rebuild.Stop()
					}
					rebuild = time.AfterFunc(debounce, func() {
						if c != nil {
							if err := c.Invalidate(); err != nil {
								logger.Warn("cache invalidation failed", zap.Error(err))
							}
						}
						if err := builder.Build(); err != nil {
							logger.Error("rebuild failed", zap.Error(err))
							return
						}
						logger.Info("site rebuilt")
					})
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					logger.Warn("watcher error", zap.Error(err))
				}
			}
		}()

		for _, root := range []string{appConfig.ContentDir, appConfig.LayoutsDir, appConfig.StaticDir} {
			if _, err := os.Stat(root); os.IsNotExist(err) {
				logger.Info("directory not found, not watching", zap.String("dir", root))
				continue
			}
			err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if d.IsDir() {
					if werr := watcher.Add(path); werr != nil {
						logger.Warn("watch failed", zap.String("path", path), zap.Error(werr))
					}
				}
				return nil
			})
			if err != nil {
				logger.Warn("walking watch root failed", zap.String("dir", root), zap.Error(err))
			}
		}

		port := serverPort
		if port == 0 {
			port = appConfig.Port
		}
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           server.New(appConfig, store, logger).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("serving site", zap.Int("port", port), zap.String("output", appConfig.OutputDir))
		return srv.ListenAndServe()
	},
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "port to serve on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
