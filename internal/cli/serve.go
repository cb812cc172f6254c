package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"yatube/internal/database"
	"yatube/internal/service"
	transport "yatube/internal/transport/http"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Load Configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Migrate and connect to Database
	if serveMigrate {
		if err := migrateUp(cfg); err != nil {
			return err
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Page cache (Redis when configured)
	pages, closePages, err := openPageCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePages()

	deps := transport.Deps{
		Config:    cfg,
		Repos:     transport.NewRepositories(db),
		PageCache: pages,
		AccessLog: true,
	}

	// 4. Image uploads (Cloudflare R2 when configured)
	if cfg.MediaEnabled() {
		media, err := service.NewMediaService(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to init media service: %w", err)
		}
		deps.Images = media
	} else {
		log.Println("[Media] R2 is not configured, image uploads are disabled")
	}

	// 5. Setup Server
	h, err := transport.NewHandler(deps)
	if err != nil {
		return err
	}
	return transport.Run(ctx, cfg, h)
}
