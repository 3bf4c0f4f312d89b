package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"onthisday/internal/app"
	"onthisday/internal/config"
	"onthisday/internal/domain"
	"onthisday/internal/presentation"
	"onthisday/internal/tui"
)

type checkOptions struct {
	tui        bool
	urlsOnly   bool
	imagesOnly bool
}

func newCheckCmd(cc *cliContext) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List photos last modified on today's date in past years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveCheckConfig(cc, opts.imagesOnly)
			if err != nil {
				return err
			}
			if opts.tui {
				return runCheckTUI(cmd.Context(), cc, cfg)
			}

			result, err := discover(cmd.Context(), cc, cfg)
			if err != nil {
				return err
			}
			out := presentation.Printer{Writer: os.Stdout, Verbose: cc.verbose}
			if opts.urlsOnly {
				out.PrintURLs(result)
			} else {
				out.PrintPhotos(result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.tui, "tui", false, "interactive view")
	cmd.Flags().BoolVar(&opts.urlsOnly, "urls", false, "print only the photo URLs")
	cmd.Flags().BoolVar(&opts.imagesOnly, "images-only", false, "ignore files that are not images")
	return cmd
}

func resolveCheckConfig(cc *cliContext, imagesOnly bool) (config.ServerConfig, error) {
	cfg, err := config.Resolve(cc.source())
	if err != nil {
		return config.ServerConfig{}, err
	}
	cfg.ImagesOnly = cfg.ImagesOnly || imagesOnly
	return cfg, nil
}

// discover runs the photo check, printing status messages to stderr.
func discover(ctx context.Context, cc *cliContext, cfg config.ServerConfig) (domain.PhotoResult, error) {
	status := presentation.Printer{Writer: os.Stderr}
	engine := cc.engine()
	engine.OnStatus = func(ev domain.StatusEvent) {
		if ev.Stage != domain.StageFailure {
			status.PrintEvent(ev)
		}
	}
	return engine.DiscoverPhotosAsync(ctx, cfg).Wait(ctx)
}

func runCheckTUI(ctx context.Context, cc *cliContext, cfg config.ServerConfig) error {
	model := tui.NewModel(tui.Config{
		Server:     cfg.BaseAddress,
		TargetPath: cfg.TargetPath,
		Verbose:    cc.verbose,
	})
	prog := tea.NewProgram(model, tea.WithContext(ctx))

	engine := cc.engine()
	engine.OnStatus = func(ev domain.StatusEvent) {
		prog.Send(tui.StatusMsg{Event: ev})
	}

	future := engine.DiscoverPhotosAsync(ctx, cfg)
	go forwardResult(future, prog)

	final, err := prog.Run()
	future.Cancel()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		if photo, ok := m.SelectedPhoto(); ok {
			fmt.Fprintln(os.Stdout, photo.URL)
		}
	}
	return nil
}

func forwardResult(future *app.Future[domain.PhotoResult], prog *tea.Program) {
	<-future.Done()
	result, err := future.Wait(context.Background())
	if err != nil {
		prog.Send(tui.ErrorMsg{Err: err})
		return
	}
	prog.Send(tui.ResultMsg{Result: result})
}
