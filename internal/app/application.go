package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"page-builder-backend/internal/config"
	"page-builder-backend/internal/database"
	"page-builder-backend/internal/handlers"
	"page-builder-backend/internal/middleware"
	"page-builder-backend/internal/render"
	"page-builder-backend/internal/repository"
	"page-builder-backend/internal/schemas"
	"page-builder-backend/internal/seed"
	"page-builder-backend/internal/sections"
	"page-builder-backend/internal/service"
	"page-builder-backend/pkg/cache"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/validator"
)

type Options struct {
	// DB replaces the connection opened from the config.
	DB *gorm.DB
	// SkipSeed leaves the database as it is.
	SkipSeed bool
}

type Application struct {
	cfg     *config.Config
	options Options

	db      *gorm.DB
	cache   *cache.Cache
	limiter *middleware.RateLimiter

	schemas  *schemas.Registry
	renderer *render.Renderer

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Page     repository.PageRepository
	Section  repository.SectionRepository
	Category repository.CategoryRepository
	Media    repository.MediaRepository
}

type serviceContainer struct {
	Page     *service.PageService
	Category *service.CategoryService
	Media    *service.MediaService
}

type handlerContainer struct {
	Page     *handlers.PageHandler
	Section  *handlers.SectionHandler
	Category *handlers.CategoryHandler
	Media    *handlers.MediaHandler
	Builder  *handlers.BuilderHandler
	Public   *handlers.PublicHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	validator.Init()

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}
	app.initRepositories()
	if err := app.initServices(); err != nil {
		return nil, err
	}

	if !opts.SkipSeed {
		app.seed(context.Background())
	}

	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	a.limiter.Shutdown()

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil && a.options.DB == nil {
		database.Close(a.db)
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

// PageService exposes the in-process store, which a builder session can use
// directly.
func (a *Application) PageService() *service.PageService {
	return a.services.Page
}

func (a *Application) CategoryService() *service.CategoryService {
	return a.services.Category
}

func (a *Application) initDatabase() error {
	if a.options.DB != nil {
		a.db = a.options.DB
		return nil
	}

	db, err := database.Open(a.cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return err
	}

	a.db = db
	return nil
}

func (a *Application) initCache() error {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableRedis)
	if err != nil {
		return fmt.Errorf("failed to connect to cache: %w", err)
	}
	a.cache = c
	return nil
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Page:     repository.NewPageRepository(a.db),
		Section:  repository.NewSectionRepository(a.db),
		Category: repository.NewCategoryRepository(a.db),
		Media:    repository.NewMediaRepository(a.db),
	}
}

func (a *Application) initServices() error {
	mediaService, err := service.NewMediaService(a.repositories.Media, a.cfg.UploadDir, a.cfg.UploadURL, a.cfg.MaxUploadSize)
	if err != nil {
		return err
	}

	a.services = serviceContainer{
		Page:     service.NewPageService(a.repositories.Page, a.repositories.Section, a.repositories.Category, a.cache, a.cfg.PublicPageCacheTTL),
		Category: service.NewCategoryService(a.repositories.Category),
		Media:    mediaService,
	}
	return nil
}

func (a *Application) seed(ctx context.Context) {
	var categoryID *uint
	if category := seed.EnsureDefaultCategory(ctx, a.services.Category); category != nil {
		categoryID = &category.ID
	}
	seed.EnsureDefaultPages(ctx, a.services.Page, schemas.Default(), categoryID)
}

func (a *Application) initHandlers() {
	a.schemas = schemas.Default()
	a.renderer = render.New(sections.DefaultRegistry(), sections.NewHTMLContext())

	a.handlers = handlerContainer{
		Page:     handlers.NewPageHandler(a.services.Page),
		Section:  handlers.NewSectionHandler(a.services.Page),
		Category: handlers.NewCategoryHandler(a.services.Category),
		Media:    handlers.NewMediaHandler(a.services.Media),
		Builder:  handlers.NewBuilderHandler(a.schemas, a.renderer, a.cfg.RouteSuggestions),
		Public:   handlers.NewPublicHandler(a.services.Page, a.renderer),
	}
}

func (a *Application) initRouter() {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a.limiter = middleware.NewRateLimiter(context.Background(), a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, a.cfg.RateLimitBurst)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.limiter))

	if corsConfig, ok := a.corsConfig(); ok {
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static(a.uploadRoute(), a.cfg.UploadDir)

	api := router.Group("/api")
	{
		pages := api.Group("/pages")
		{
			pages.GET("", a.handlers.Page.GetAll)
			pages.POST("", a.handlers.Page.Create)
			pages.GET("/slug-available", a.handlers.Page.SlugAvailable)
			pages.GET("/:id", a.handlers.Page.GetByID)
			pages.PUT("/:id", a.handlers.Page.Update)
			pages.DELETE("/:id", a.handlers.Page.Delete)
			pages.GET("/:id/sections", a.handlers.Page.GetSections)
			pages.POST("/:id/sections", a.handlers.Page.CreateSection)
			pages.POST("/:id/sections/reorder", a.handlers.Page.ReorderSections)
		}

		api.PUT("/sections/:id", a.handlers.Section.Update)
		api.DELETE("/sections/:id", a.handlers.Section.Delete)

		api.GET("/public/pages/:slug", a.handlers.Page.GetPublic)

		api.GET("/categories", a.handlers.Category.GetAll)
		api.POST("/categories", a.handlers.Category.Create)

		api.GET("/media", a.handlers.Media.List)
		api.POST("/media", a.handlers.Media.Upload)
		api.GET("/media/:id", a.handlers.Media.GetByID)

		builder := api.Group("/builder")
		{
			builder.GET("/components", a.handlers.Builder.Components)
			builder.GET("/components/:type/defaults", a.handlers.Builder.Defaults)
			builder.GET("/components/:type/form", a.handlers.Builder.Form)
			builder.POST("/normalize/:type", a.handlers.Builder.Normalize)
			builder.POST("/preview", a.handlers.Builder.Preview)
		}
	}

	public := router.Group("/p")
	public.Use(middleware.SecurityHeadersMiddleware(nil, []string{"https://www.youtube.com", "https://player.vimeo.com"}))
	{
		public.GET("/:slug", a.handlers.Public.RenderPage)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}

// corsConfig reports false when no origin is configured, since cors.New
// panics on an empty origin list.
func (a *Application) corsConfig() (cors.Config, bool) {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range a.cfg.CORSOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg, true
		}
	}
	if len(a.cfg.CORSOrigins) == 0 {
		return cfg, false
	}
	cfg.AllowOrigins = a.cfg.CORSOrigins
	return cfg, true
}

func (a *Application) uploadRoute() string {
	route := "/" + strings.Trim(a.cfg.UploadURL, "/")
	if route == "/" || strings.HasPrefix(route, "/api") || strings.HasPrefix(route, "/p/") {
		return "/uploads"
	}
	return route
}
