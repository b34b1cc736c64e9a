package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shahar-caura/textuml/internal/render"
	"github.com/shahar-caura/textuml/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(c *cli) *cobra.Command {
	var (
		format   string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Regenerate the diagram every time a file is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			path := args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			proc := c.newProcessor(ctx)
			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

			return watch.NewFile(path, debounce, c.logger).Run(ctx, func() {
				data, err := os.ReadFile(path)
				if err != nil {
					c.logger.Warn("reading watched file", "path", path, "err", err)
					return
				}
				fmt.Fprintf(stdout, "==> %s (%s) <==\n", path, time.Now().Format(time.TimeOnly))
				if err := render.Write(stdout, proc.Process(ctx, string(data)), f); err != nil {
					fmt.Fprintf(stderr, "%s: %v\n", path, err)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatMermaid), "output format: json, yaml, mermaid, plantuml")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return cmd
}
