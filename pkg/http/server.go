package http

import (
	"context"

	"github.com/lintang-b-s/Voronoix/pkg/engine"
	http_router "github.com/lintang-b-s/Voronoix/pkg/http/router"
	"github.com/lintang-b-s/Voronoix/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Voronoix/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	controllers.TessellationService
	OnPass(l engine.PassListener)
}

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use serves the API for service until ctx is canceled. every finished pass is pushed to /ws subscribers.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	service Service,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	api := http_router.NewAPI(s.Log)
	service.OnPass(api.Hub().PassListener())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return api.Run(gctx, config, service, useRateLimit)
	})

	return g.Wait()
}
