package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sersergious/folio/internal/deploy"
)

var deployBucket string

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Uploads the built site to the configured S3 bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		dc := appConfig.Deploy
		if deployBucket != "" {
			dc.Bucket = deployBucket
		}
		if dc.Bucket == "" {
			return fmt.Errorf("no deploy bucket configured (set deploy.bucket or pass --bucket)")
		}
		if _, err := os.Stat(appConfig.OutputDir); err != nil {
			return fmt.Errorf("output directory %q not found, run 'folio build' first", appConfig.OutputDir)
		}

		ctx := cmd.Context()
		client, err := deploy.NewClient(ctx, dc)
		if err != nil {
			return err
		}
		uploader := deploy.NewUploader(client, dc, logger)
		n, err := uploader.SyncDir(ctx, appConfig.OutputDir)
		if err != nil {
			return err
		}
		logger.Info("deploy complete", zap.Int("objects", n), zap.String("bucket", dc.Bucket))
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVar(&deployBucket, "bucket", "", "override the configured deploy bucket")
	rootCmd.AddCommand(deployCmd)
}
