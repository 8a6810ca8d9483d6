// Package api exposes the tracker over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/api/dto"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/application/service"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/storage"
)

// Server serves the tracking API.
type Server struct {
	svc    *service.TrackerService
	repo   storage.Repository
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer creates a Server around an initialized tracker service.
func NewServer(svc *service.TrackerService, repo storage.Repository, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		svc:    svc,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
	}))

	allowOrigins := s.cfg.Server.AllowedOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", s.getHealth)
		apiGroup.GET("/sets", s.getSets)
		apiGroup.GET("/cards", s.getCards)
		apiGroup.POST("/catalog/reload", s.reloadCatalog)
		apiGroup.POST("/match", s.matchSales)
		apiGroup.POST("/scrape", s.runScrape)
		apiGroup.GET("/runs", s.listRuns)
		apiGroup.GET("/runs/:id", s.getRun)
	}

	return router
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := ":" + strconv.Itoa(s.cfg.Server.Port)
	s.logger.Info("api server listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) getHealth(c *gin.Context) {
	snap := s.svc.Snapshot()
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "healthy",
		Sets:   len(snap.Sets),
		Cards:  len(snap.Cards),
	})
}

func (s *Server) getSets(c *gin.Context) {
	snap := s.svc.Snapshot()
	sets := make([]catalog.SetRecord, 0, len(snap.Sets))
	for _, group := range snap.Sets {
		sets = append(sets, group.Info)
	}
	c.JSON(http.StatusOK, sets)
}

func (s *Server) getCards(c *gin.Context) {
	snap := s.svc.Snapshot()

	setCode := c.Query("set")
	if setCode == "" {
		c.JSON(http.StatusOK, snap.Cards)
		return
	}

	group, ok := snap.Sets[setCode]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("set "+setCode))
		return
	}
	c.JSON(http.StatusOK, group.Cards)
}

func (s *Server) reloadCatalog(c *gin.Context) {
	snap := s.svc.ReloadCatalog()
	c.JSON(http.StatusOK, dto.ReloadResponse{
		Sets:  len(snap.Sets),
		Cards: len(snap.Cards),
	})
}

// matchSales validates the batch shape before handing it to the
// aggregator: the sales key must exist and hold a JSON array.
func (s *Server) matchSales(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}
	if body := bytes.TrimSpace(req.Sales); len(body) == 0 || string(body) == "null" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("sales array required"))
		return
	}

	var sales []sources.RawSale
	if err := json.Unmarshal(req.Sales, &sales); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("sales must be an array"))
		return
	}

	c.JSON(http.StatusOK, s.svc.MatchBatch(sales))
}

func (s *Server) runScrape(c *gin.Context) {
	var req dto.ScrapeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
			return
		}
	}

	result, err := s.svc.RunScrape(c.Request.Context(), service.RunRequest{
		Marketplace: sources.Marketplace(req.Marketplace),
		MaxItems:    req.MaxItems,
	})
	if err != nil {
		s.logger.Error("scrape run failed", "error", err)
		c.JSON(http.StatusBadGateway, dto.NewAPIError(dto.ErrCodeScrapeFailed, err.Error()))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) listRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}

	runs, err := s.repo.ListRuns(limit)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	runID := c.Param("id")

	run, err := s.repo.GetRun(runID)
	if err != nil {
		s.logger.Error("failed to load run", "run", runID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("run "+runID))
		return
	}

	sales, err := s.repo.GetMatchedSales(runID)
	if err != nil {
		s.logger.Error("failed to load run sales", "run", runID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	stats, err := s.repo.GetCardStats(runID)
	if err != nil {
		s.logger.Error("failed to load run stats", "run", runID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.RunDetailResponse{
		Run:   run,
		Sales: sales,
		Stats: stats,
	})
}
