package http

import (
	stdhttp "net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/heyymateen/CodeSync/internal/config"
	"github.com/heyymateen/CodeSync/internal/core"
	"github.com/heyymateen/CodeSync/internal/metrics"
)

// NewServer builds the HTTP server: health, metrics, the websocket
// endpoint, and optionally the built frontend as an SPA.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	if cfg.StaticDir != "" {
		router.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
		router.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
		// SPA fallback: unknown paths render the frontend shell.
		router.NoRoute(func(c *gin.Context) {
			c.File(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{stdhttp.MethodGet, stdhttp.MethodPost, stdhttp.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           corsWrapper.Handler(router),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
