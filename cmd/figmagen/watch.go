package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gnana997/figmagen/pkg/pipeline"
	"github.com/gnana997/figmagen/pkg/watch"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build once, then rebuild whenever the registry, theme or sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				out := cmd.OutOrStdout()
				res, err := p.WriteAll(p.State())
				if err != nil {
					return err
				}
				printResult(out, "build", res)

				rb := watch.NewRebuilder(p, p.Logger())
				rb.OnReport = func(rep watch.Report) {
					if rep.Err != nil {
						color.New(color.FgRed).Fprintf(out, "✗ rebuild failed: %v\n", rep.Err)
						return
					}
					step := "rescan"
					if rep.Reloaded {
						step = "reload"
					}
					printResult(out, fmt.Sprintf("%s (%d changed, %s)", step, len(rep.Batch.Files), rep.Duration.Round(time.Millisecond)), rep.Result)
				}

				w, err := rb.Watch(watch.Options{Debounce: debounce})
				if err != nil {
					return err
				}
				defer w.Stop()

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				stats := w.Stats()
				color.New(color.FgCyan).Fprintf(out, "watching %d directories, press Ctrl+C to stop\n", stats.Watched)
				<-ctx.Done()
				fmt.Fprintln(out, "stopping")
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a batch of changes is rebuilt")
	return cmd
}
