// cmd/score/main.go
// Scores all predictions for one race from the command line, or reports the
// eligibility gate's status with -status.
//
// Usage:
//
//	go run ./cmd/score -race 12
//	go run ./cmd/score -race 12 -status
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/gridcall/api/config"
	bundb "github.com/gridcall/api/db"
	"github.com/gridcall/api/f1data"
	"github.com/gridcall/api/gate"
	applog "github.com/gridcall/api/logger"
	"github.com/gridcall/api/scoring"
)

func main() {
	raceID := flag.Int("race", 0, "race id to score (required)")
	statusOnly := flag.Bool("status", false, "print the gate status instead of scoring")
	flag.Parse()

	if *raceID <= 0 {
		log.Fatal("-race is required")
	}

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()

	provider := f1data.NewClient(cfg.F1APIBaseURL, f1data.NewMemoryCache(cfg.F1CacheTTL))
	g := gate.New(func(ctx context.Context, year, round int) (bool, error) {
		return f1data.Complete(ctx, provider, year, round)
	}, logger)
	scorer := scoring.NewService(scoring.NewPGStore(db), g, provider, logger)

	ctx := context.Background()

	if *statusOnly {
		report, err := scorer.Status(ctx, *raceID)
		if err != nil {
			log.Fatal("status:", err)
		}
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		return
	}

	summary, err := scorer.ScoreRace(ctx, *raceID)
	if err != nil {
		logger.Error("scoring failed", zap.Int("raceID", *raceID), zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("race %d scored: %d predictions, %.1f points awarded\n",
		summary.RaceID, summary.PredictionsScored, summary.TotalPoints)
}
