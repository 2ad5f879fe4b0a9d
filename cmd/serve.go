package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sitescope/estimator-cli/internal/server"
	"github.com/sitescope/estimator-cli/internal/store"
	"github.com/sitescope/estimator-cli/internal/valuation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the estimation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port, _ := cmd.Flags().GetInt("port")
		noStore, _ := cmd.Flags().GetBool("no-store")

		if port == 0 {
			port = cfg.Server.Port
		}
		// The effective port must be valid even when persistence is off.
		mode := "serve"
		if noStore {
			mode = "server"
		}
		effective := *cfg
		effective.Server.Port = port
		if err := effective.Validate(mode); err != nil {
			return err
		}

		tuning, err := cfg.EffectiveTuning()
		if err != nil {
			return err
		}

		var st store.Store
		if !noStore {
			st, err = initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		} else {
			zap.L().Info("persistence disabled, results will not be stored")
		}

		srv := server.New(server.Options{
			Port:           port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Valuer:         valuation.New(tuning),
			Store:          st,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "server port (default from config)")
	serveCmd.Flags().Bool("no-store", false, "serve without persisting assessments")
	rootCmd.AddCommand(serveCmd)
}
