package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/gridcall/api/config"
	"github.com/gridcall/api/db"
	"github.com/gridcall/api/f1data"
	"github.com/gridcall/api/gate"
	"github.com/gridcall/api/handlers"
	applog "github.com/gridcall/api/logger"
	"github.com/gridcall/api/metrics"
	mw "github.com/gridcall/api/middleware"
	"github.com/gridcall/api/scoring"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	provider := f1data.NewClient(cfg.F1APIBaseURL, f1data.NewMemoryCache(cfg.F1CacheTTL))
	g := gate.New(func(ctx context.Context, year, round int) (bool, error) {
		return f1data.Complete(ctx, provider, year, round)
	}, logger)
	scorer := scoring.NewService(scoring.NewPGStore(bdb), g, provider, logger)

	h := handlers.New(bdb, scorer, cfg.JWTKey())

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/signup", h.Signup)
	e.POST("/signin", h.Signin)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/races", h.Races)
	api.GET("/races/upcoming", h.UpcomingRaces)
	api.GET("/races/:id", h.Race)
	api.POST("/races", h.CreateRace)
	api.GET("/races/:id/outcome", h.RaceOutcome)
	api.GET("/races/:id/predictions", h.RacePredictions)
	api.GET("/races/:id/prediction", h.MyPrediction)
	api.POST("/predictions", h.CreatePrediction)
	api.PUT("/predictions/:id/chaser", h.UpdateChaser)
	api.POST("/grids", h.CreateGrid)
	api.POST("/grids/join", h.JoinGrid)
	api.GET("/grids/:id/members", h.GridMembers)
	api.GET("/grids/:id/leaderboard", h.GridLeaderboard)
	api.POST("/races/:id/score", h.ScoreRace)
	api.GET("/races/:id/scoring-status", h.ScoringStatus)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
