package main

import (
	"context"
	"errors"

	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/http"
	"github.com/lintang-b-s/Voronoix/pkg/http/usecases"
	"github.com/lintang-b-s/Voronoix/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tessellation over HTTP and push pass summaries on /ws",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewWithOptions(logLevel("info"), []string{"stderr"})
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg, err := newEngineConfig()
			if err != nil {
				return err
			}
			eng, err := engine.NewEngine(cfg, log)
			if err != nil {
				return err
			}
			service, err := usecases.NewTessellationService(log, eng, viper.GetInt("RENDER_CACHE_SIZE"))
			if err != nil {
				return err
			}

			api := http.NewServer(log)
			err = api.Use(cmd.Context(), viper.GetBool("USE_RATE_LIMIT"), service)
			if errors.Is(err, context.Canceled) {
				log.Info("Voronoix server stopped", zap.String("runID", eng.RunID().String()))
				return nil
			}
			return err
		},
	}

	cmd.Flags().Int("port", 6060, "API port")
	cmd.Flags().Bool("rate-limit", false, "enable the global request rate limit")
	bindFlag(cmd, "API_PORT", "port")
	bindFlag(cmd, "USE_RATE_LIMIT", "rate-limit")
	return cmd
}
