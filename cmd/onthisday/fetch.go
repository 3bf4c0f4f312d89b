package main

import (
	"os"

	"github.com/spf13/cobra"

	"onthisday/internal/app"
	"onthisday/internal/infra/exif"
	"onthisday/internal/infra/fs"
	"onthisday/internal/infra/webdav"
	"onthisday/internal/presentation"
)

func newFetchCmd(cc *cliContext) *cobra.Command {
	var (
		outDir     string
		overwrite  bool
		imagesOnly bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download today's photos from past years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveCheckConfig(cc, imagesOnly)
			if err != nil {
				return err
			}

			result, err := discover(cmd.Context(), cc, cfg)
			if err != nil {
				return err
			}

			fetcher := app.Fetcher{
				Client:    &webdav.Client{Logger: cc.logger},
				FS:        fs.OSFS{},
				Exif:      exif.Reader{},
				Logger:    cc.logger,
				Overwrite: overwrite,
				OnProgress: func(current, total int, name string) {
					cc.logger.Infof("[%d/%d] %s", current, total, name)
				},
			}
			report, err := fetcher.Fetch(cmd.Context(), cfg, result, outDir)
			if err != nil {
				return err
			}
			presentation.Printer{Writer: os.Stdout, Verbose: cc.verbose}.PrintFetch(report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to download into")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace photos that were already downloaded")
	cmd.Flags().BoolVar(&imagesOnly, "images-only", false, "ignore files that are not images")
	return cmd
}
