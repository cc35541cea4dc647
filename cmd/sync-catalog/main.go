package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/5h3r42/savzix-store-antigravity/catalogsync"
	"github.com/5h3r42/savzix-store-antigravity/config"
	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/store"
)

func main() {
	var (
		opts   catalogsync.Options
		status string
		dryRun bool
		run    bool
	)

	cmd := &cobra.Command{
		Use:           "sync-catalog",
		Short:         "Sync the product catalogue from the supplier spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if dryRun == run {
				return httperr.New(httperr.KindValidation, "specify exactly one mode: --dry-run or --run")
			}
			opts.Mode = catalogsync.ModeRun
			if dryRun {
				opts.Mode = catalogsync.ModeDryRun
			}
			opts.Status = models.ProductStatus(status)
			opts.PlaceholderImage = config.Load().PlaceholderImage

			db, err := gorm.Open(postgres.Open(config.DatabaseDSN()), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err != nil {
				return httperr.Wrap(httperr.KindConfiguration, err, "DB connection failed")
			}

			_, err = catalogsync.Run(store.NewCatalog(db), opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&dryRun, "dry-run", false, "parse and report without writing")
	flags.BoolVar(&run, "run", false, "parse and upsert into the catalogue")
	flags.StringVar(&opts.XLSXPath, "xlsx", "", "supplier spreadsheet path")
	flags.StringVar(&opts.ManifestPath, "manifest", "", "image-import manifest JSON path")
	flags.IntVar(&opts.DefaultStock, "default-stock", catalogsync.DefaultStock, "stock level for synced products")
	flags.StringVar(&status, "status", string(models.ProductStatusActive), "status for synced products (Active|Draft|Archived)")
	flags.StringVar(&opts.SummaryPath, "summary-path", "artifacts/catalog-sync-summary.json", "run summary JSON output")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
