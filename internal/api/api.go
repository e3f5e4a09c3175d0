// Package api exposes the services over HTTP (gin) and streams pipeline
// progress over a websocket.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"ugc-studio/internal/breakdown"
	"ugc-studio/internal/middleware"
	"ugc-studio/internal/service"
)

// Services groups what the handlers call.
type Services struct {
	Brands    service.BrandService
	Analysis  service.AnalysisService
	Ideas     service.IdeaService
	Scripts   service.ScriptService
	Media     service.MediaService
	Pipeline  service.PipelineService
	Extractor *breakdown.Extractor
}

type RouterConfig struct {
	BasePath       string
	AllowedOrigins []string
	// MediaDir is served under /media when set (local media store).
	MediaDir      string
	EnableMetrics bool
	Debug         bool
}

type Handler struct {
	brands    service.BrandService
	analysis  service.AnalysisService
	ideas     service.IdeaService
	scripts   service.ScriptService
	media     service.MediaService
	pipeline  service.PipelineService
	extractor *breakdown.Extractor
	origins   []string
	logger    *zap.Logger
}

func NewHandler(s Services, allowedOrigins []string, logger *zap.Logger) *Handler {
	extractor := s.Extractor
	if extractor == nil {
		extractor = breakdown.New()
	}
	return &Handler{
		brands:    s.Brands,
		analysis:  s.Analysis,
		ideas:     s.Ideas,
		scripts:   s.Scripts,
		media:     s.Media,
		pipeline:  s.Pipeline,
		extractor: extractor,
		origins:   allowedOrigins,
		logger:    logger.Named("HTTPHandler"),
	}
}

// NewRouter builds the gin engine with logging, CORS, health, metrics and all routes.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZapLoggingMiddlewareForGin(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api/v1"
	}
	h.RegisterRoutes(router.Group(basePath))
	router.GET("/ws/pipeline/:brandId", h.pipelineStream)

	// registered after the routes so the path labels are known
	if cfg.EnableMetrics {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}
	return router
}

// RegisterRoutes mounts the REST endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	brands := r.Group("/brands")
	{
		brands.POST("", h.createBrand)
		brands.GET("", h.listBrands)
		brands.GET("/:id", h.getBrand)
		brands.PATCH("/:id", h.updateBrand)
		brands.DELETE("/:id", h.deleteBrand)

		brands.POST("/:id/analysis", h.generateAnalysis)
		brands.GET("/:id/analysis", h.getAnalysis)

		brands.POST("/:id/ideas/generate", h.generateIdeas)
		brands.POST("/:id/ideas", h.saveIdeas)
		brands.GET("/:id/ideas", h.listIdeas)

		brands.POST("/:id/pipeline", h.runPipeline)
	}

	ideas := r.Group("/ideas")
	{
		ideas.GET("/:id", h.getIdea)
		ideas.PATCH("/:id", h.updateIdea)
		ideas.DELETE("/:id", h.deleteIdea)
		ideas.PUT("/:id/ranking", h.setIdeaRanking)
	}

	scripts := r.Group("/scripts")
	{
		scripts.POST("/generate", h.generateScript)
		scripts.POST("/draft", h.draftScript)
		scripts.POST("", h.saveScript)
		scripts.GET("", h.listScripts)
		scripts.GET("/:id", h.getScript)
		scripts.PATCH("/:id", h.updateScript)
		scripts.DELETE("/:id", h.deleteScript)
		scripts.PUT("/:id/ranking", h.setScriptRanking)
		scripts.GET("/:id/breakdown", h.scriptBreakdown)
		scripts.GET("/:id/media", h.listScriptMedia)
		scripts.POST("/:id/shots/:index/image", h.generateShotImage)
		scripts.POST("/:id/shots/:index/video", h.generateShotVideo)
		scripts.POST("/:id/characters/:index/image", h.generateCharacterImage)
	}

	r.POST("/breakdown", h.breakdownText)
	r.GET("/templates", h.listTemplates)
}
