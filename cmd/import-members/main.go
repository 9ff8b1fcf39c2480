package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gpevim-backend/internal/config"
	"gpevim-backend/internal/domains/member/importer"
	"gpevim-backend/pkg/container"
	"gpevim-backend/pkg/logger"
)

var (
	filePath  string
	imagesDir string
)

var rootCmd = &cobra.Command{
	Use:   "import-members",
	Short: "Bulk import members into the durable store",
	Long: `Reads members from a JSON array or an .xlsx sheet and inserts them one by one.
Rows with a local_image_path get the image resized and uploaded to the
members-images bucket first. Failed rows are logged and skipped.`,
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "members file (.json or .xlsx)")
	rootCmd.Flags().StringVar(&imagesDir, "images-dir", ".", "base directory for relative local_image_path values")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Init(cfg.App.Env, cfg.App.LogLevel)

	rows, err := importer.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	im, cleanup, err := container.NewMemberImporter(ctx, cfg, imagesDir)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info().Str("file", filePath).Int("rows", len(rows)).Msg("Starting member import")
	res := im.Run(ctx, rows)

	log.Info().
		Int("total", res.Total).
		Int("inserted", res.Inserted).
		Int("failed", res.Failed).
		Int("images_uploaded", res.ImagesUploaded).
		Int("images_missing", res.ImagesMissing).
		Msg("Member import finished")

	if res.Failed > 0 {
		return fmt.Errorf("%d of %d rows failed", res.Failed, res.Total)
	}
	return nil
}
