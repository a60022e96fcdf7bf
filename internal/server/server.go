// Package server exposes the planner over HTTP: a JSON API plus a small
// form page, mirroring what the planner offers on the command line.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/catalog"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/royale"
)

// DefaultCacheSize bounds the plan response cache. Plans are pure
// functions of (economy, snapshot, settings), so caching is safe.
const DefaultCacheSize = 256

// Config carries the server's collaborators. Zero-value fields fall back
// to the built-in economy, the embedded catalog, and the default logger.
type Config struct {
	Economy   *gamedata.Economy
	Catalog   *catalog.Catalog
	Client    *royale.Client // nil disables live player lookups
	Logger    *slog.Logger
	CacheSize int
}

// Server handles the HTTP surface. All state is read-only after New, so
// handlers are safe to run concurrently; the lru cache locks internally.
type Server struct {
	economy *gamedata.Economy
	catalog *catalog.Catalog
	client  *royale.Client
	log     *slog.Logger
	cache   *lru.Cache
}

func New(cfg Config) *Server {
	if cfg.Economy == nil {
		cfg.Economy = gamedata.Default()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Embedded()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	cache, _ := lru.New(cfg.CacheSize)
	return &Server{
		economy: cfg.Economy,
		catalog: cfg.Catalog,
		client:  cfg.Client,
		log:     cfg.Logger,
		cache:   cache,
	}
}

// Router builds the gin engine with logging, recovery and CORS wired in.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/plan", s.handlePlan)
		api.POST("/compare", s.handleCompare)
		api.GET("/player/:tag", s.handlePlayer)
	}

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("serving",
		slog.String("addr", addr),
		slog.String("snapshot_date", s.economy.SnapshotDate()),
		slog.Int("catalog_size", s.catalog.Size()),
		slog.Bool("live_lookups", s.client != nil))
	return s.Router().Run(addr)
}

// requestLogger logs each request in a structured format, warning on
// client errors and erroring on server errors.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		s.log.Log(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.ClientIP()),
			slog.Int("size", c.Writer.Size()),
		)
	}
}
