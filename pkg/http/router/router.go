package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/Voronoix/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Voronoix/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Voronoix/pkg/http/server"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log, hub: controllers.NewHub()}
}

func (api *API) Hub() *controllers.Hub {
	return api.hub
}

// Handler the full middleware chain in front of the /api routes, /ws and pprof.
func (api *API) Handler(service controllers.TessellationService, useRateLimit bool) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	router.GET("/ws", api.handleWebsocket)

	group := router_helper.NewRouteGroup(router, "/api")
	voronoixRoutes := controllers.New(service, api.log)
	voronoixRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Labels, Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(viper.GetFloat64("RATE_LIMIT_RPS"), viper.GetInt("RATE_LIMIT_BURST")))
	}
	return alice.New(mwChain...).Then(router)
}

// Run serves the API until ctx is done or the listener fails.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	service controllers.TessellationService,
	useRateLimit bool,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(service, useRateLimit), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.hub.RemoveAllUser()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		api.log.Error("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		api.hub.RemoveAllUser()
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}
