// Package blog is a file-backed blog content engine built with Go and Echo.
// Posts are persisted as paginated JSON files that clients read directly as
// static assets; the engine adds an authoring API, static HTML copies of
// each post for crawlers, a sitemap, and an RSS feed.
package blog

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// App is the central application. It wires together the store, the
// generators, the HTTP surface, and the optional regeneration schedule.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	HTML   *HTMLGenerator
	Logger *zap.Logger

	writeLimiter *WriteLimiter
	scheduler    *cron.Cron
	customRoutes []func(*App)
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init prepares the store, generators, middleware, and routes without
// starting the server. The CLI uses it for one-shot regeneration runs.
func (a *App) Init() error {
	if a.Logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("blog: init logger: %w", err)
		}
		a.Logger = logger
	}

	store, err := NewStore(a.Config.DataDir, a.Config.PostsPerPage, a.Logger)
	if err != nil {
		return fmt.Errorf("blog: init store: %w", err)
	}
	a.Store = store

	a.HTML = NewHTMLGenerator(store, a.Config.HTMLDir, a.Config.CrawlerAgents, a.Logger)
	a.writeLimiter = NewWriteLimiter(30, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	return nil
}

// Start initializes the app, starts the regeneration schedule if one is
// configured, and serves HTTP until the listener fails or is closed.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}

	if a.Config.RegenSchedule != "" {
		a.scheduler = cron.New()
		_, err := a.scheduler.AddFunc(a.Config.RegenSchedule, func() {
			if err := a.RegenerateSEO(a.Config.URL); err != nil {
				a.Logger.Error("scheduled regeneration failed", zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("blog: bad regen schedule %q: %w", a.Config.RegenSchedule, err)
		}
		a.scheduler.Start()
		a.Logger.Info("regeneration schedule active", zap.String("spec", a.Config.RegenSchedule))
	}

	a.Logger.Info("server starting",
		zap.String("addr", a.Config.Addr),
		zap.String("data_dir", a.Config.DataDir))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RegenerateSEO runs a full bulk regeneration: static HTML for every post,
// then sitemap and feed. Per-post HTML failures are logged, not fatal; a
// sitemap or feed failure is returned.
func (a *App) RegenerateSEO(baseURL string) error {
	if baseURL == "" {
		baseURL = a.Config.URL
	}

	report := a.HTML.GenerateAll()
	if !report.Success {
		return fmt.Errorf("blog: generate html: %v", report.Errors)
	}
	if len(report.Errors) > 0 {
		a.Logger.Warn("html generation finished with errors",
			zap.Int("count", report.Count),
			zap.Strings("errors", report.Errors))
	}

	if err := WriteSitemap(a.Store, a.Config.PublicDir, baseURL); err != nil {
		return err
	}
	if err := WriteFeed(a.Store, a.Config.PublicDir, a.Config); err != nil {
		return err
	}
	a.Logger.Info("seo regeneration complete", zap.Int("html_files", report.Count))
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// The read path: clients fetch metadata, page JSON, generated HTML,
	// sitemap.xml, and feed.xml straight from the public dir.
	e.Static("/", a.Config.PublicDir)

	e.GET("/api/metadata", a.handleMetadata)
	e.POST("/api/posts", a.handleCreatePost)
	e.GET("/api/generate-html", a.handleGenerateHTML)
	e.GET("/api/generate-sitemap", a.handleGenerateSitemap)
	e.GET("/api/generate-feed", a.handleGenerateFeed)
}

// Close stops the regeneration schedule and flushes the logger.
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
