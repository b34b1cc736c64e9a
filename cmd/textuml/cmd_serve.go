package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/shahar-caura/textuml/internal/diagram"
	"github.com/shahar-caura/textuml/internal/metrics"
	"github.com/shahar-caura/textuml/internal/nlp"
	"github.com/shahar-caura/textuml/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the diagram API and web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Server
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := metrics.NewRegistry()
			annotator := nlp.Load(ctx, c.cfg.NLP, c.logger)
			reg.SetAnnotatorEnabled(annotator != nil)
			proc := diagram.New(diagram.WithAnnotator(annotator), diagram.WithLogger(c.logger))

			return server.New(cfg, proc, reg, version, c.logger).Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 5000, "HTTP server port (overrides server.port)")

	return cmd
}
