package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finbuddy/internal/history"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				settings.HTTPAddr = addr
			}

			logger := log.New(os.Stderr, "finbuddy ", log.LstdFlags)

			gen, err := narrative.NewGenerator(settings)
			if err != nil {
				// Projections still work; narrate requests report the failure.
				logger.Printf("narrative disabled: %v", err)
				gen = nil
			}

			srv, err := server.New(settings, newEngine(cmd), history.NewStore(settings.HistoryCapacity), gen, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, settings.HTTPAddr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from settings, :8080)")
	return cmd
}
