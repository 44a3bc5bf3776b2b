package restapi

import (
	"embed"
	"html/template"
	"net/http"
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"token_creator/internal/app/port"
	"token_creator/internal/infrastructure/configloader"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RouterDeps collects what SetupRouter wires together.
type RouterDeps struct {
	Config   *configloader.Config
	Sessions port.SessionRegistry
	Wallets  port.WalletCapabilityProvider
	Metrics  port.MetricsRecorder
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/*.html")
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	cfg := deps.Config
	handler := NewTokenCreatorHandler(deps.Wallets, cfg, deps.Logger)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) == 1 && cfg.CORS.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}

	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(deps.Logger.Named("http")))
	router.Use(gin.Recovery())
	router.Use(MetricsMiddleware(deps.Metrics))

	router.GET("/health", func(c *gin.Context) {
		writeJSON(c, http.StatusOK, gin.H{"status": "ok", "sessions": deps.Sessions.Count()})
	})
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if cfg.Server.EnablePprof {
		pprofRouter := router.Group("/debug/pprof")
		{
			pprofRouter.GET("/", gin.WrapF(pprof.Index))
			pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
			pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
			pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		}
		deps.Logger.Info("Pprof endpoints enabled under /debug/pprof")
	}

	// Всё ниже работает в рамках сессии посетителя.
	session := router.Group("/")
	if cfg.RateLimit.Enabled {
		session.Use(NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware())
	}
	session.Use(SessionMiddleware(deps.Sessions, cfg.Session))
	{
		session.GET("/", handler.PageHandler)
		session.POST("/wallet/connect", handler.ConnectFormHandler)
		session.POST("/wallet/disconnect", handler.DisconnectFormHandler)
		session.POST("/token/draft", handler.DraftFormHandler)
		session.POST("/token/create", handler.CreateFormHandler)
		session.GET("/ws", handler.StateStreamHandler)
	}

	v1 := session.Group("/api/v1")
	{
		v1.GET("/state", handler.GetStateHandler)
		v1.POST("/wallet/connect", handler.ConnectWalletHandler)
		v1.POST("/wallet/disconnect", handler.DisconnectWalletHandler)
		v1.PATCH("/token/draft", handler.UpdateDraftHandler)
		v1.POST("/token/create", handler.CreateTokenHandler)
	}

	return router, nil
}
