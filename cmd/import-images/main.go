package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/5h3r42/savzix-store-antigravity/blobstore"
	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/imageimport"
)

func main() {
	var (
		opts     imageimport.Options
		dryRun   bool
		run      bool
		localDir string
	)

	cmd := &cobra.Command{
		Use:           "import-images",
		Short:         "Transcode product photo folders to WebP and upload them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if dryRun == run {
				return httperr.New(httperr.KindValidation, "specify exactly one mode: --dry-run or --run")
			}
			opts.Mode = imageimport.ModeRun
			if dryRun {
				opts.Mode = imageimport.ModeDryRun
			}

			blobs, err := buildBlobStore(cmd.Context(), opts.Bucket, localDir)
			if err != nil {
				return err
			}

			pipeline := &imageimport.Pipeline{Blobs: blobs}
			_, err = pipeline.Run(cmd.Context(), opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&dryRun, "dry-run", false, "plan and transcode without uploading")
	flags.BoolVar(&run, "run", false, "transcode and upload")
	flags.StringVar(&opts.Source, "source", "", "root directory of product photo folders")
	flags.StringVar(&opts.Bucket, "bucket", imageimport.DefaultBucket, "destination bucket")
	flags.StringVar(&opts.Prefix, "prefix", imageimport.DefaultPrefix, "storage path prefix")
	flags.IntVar(&opts.Quality, "quality", imageimport.DefaultQuality, "WebP quality (1-100)")
	flags.IntVar(&opts.Concurrency, "concurrency", imageimport.DefaultConcurrency, "parallel workers")
	flags.IntVar(&opts.MaxDimension, "max-dimension", imageimport.DefaultMaxDimension, "longest output side in pixels")
	flags.StringVar(&opts.ManifestPath, "manifest-path", "artifacts/image-import-manifest.json", "manifest JSON output")
	flags.StringVar(&opts.SummaryPath, "summary-path", "artifacts/image-import-summary.json", "run summary JSON output")
	flags.StringVar(&opts.CSVPath, "csv-path", "artifacts/image-import-manifest.csv", "manifest CSV mirror output")
	flags.StringVar(&localDir, "local-dir", "", "write to this directory instead of S3")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildBlobStore picks the destination: a local directory when requested,
// otherwise S3 from the environment.
func buildBlobStore(ctx context.Context, bucket, localDir string) (blobstore.Store, error) {
	if localDir != "" {
		return blobstore.NewLocalStore(localDir, "/uploads"), nil
	}
	return blobstore.NewS3Store(ctx, bucket)
}
