package main

import (
	"os"

	"github.com/spf13/cobra"

	"onthisday/internal/config"
	"onthisday/internal/domain"
	"onthisday/internal/presentation"
)

func newFoldersCmd(cc *cliContext) *cobra.Command {
	var sub string

	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List folders to choose the target from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ResolveServer(cc.source())
			if err != nil {
				return err
			}
			cfg.TargetPath = sub
			cfg = cfg.Normalized()

			status := presentation.Printer{Writer: os.Stderr}
			engine := cc.engine()
			engine.OnStatus = func(ev domain.StatusEvent) {
				if ev.Stage != domain.StageSuccess || cc.verbose {
					status.PrintEvent(ev)
				}
			}

			result, err := engine.ListFoldersAsync(cmd.Context(), cfg).Wait(cmd.Context())
			if err != nil {
				return err
			}
			presentation.Printer{Writer: os.Stdout, Verbose: cc.verbose}.PrintFolders(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "path", "", "list below this folder instead of the root")
	return cmd
}
