// MarketScope server entry point.
//
// Wires configuration, the scores database, the analysis and ranking
// modules, the re-score scheduler and the HTTP server, then blocks
// until SIGINT/SIGTERM and shuts everything down gracefully.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/anagnostou/marketscope/internal/config"
	"github.com/anagnostou/marketscope/internal/database"
	"github.com/anagnostou/marketscope/internal/modules/analysis"
	analysishandlers "github.com/anagnostou/marketscope/internal/modules/analysis/handlers"
	"github.com/anagnostou/marketscope/internal/modules/ranking"
	"github.com/anagnostou/marketscope/internal/scheduler"
	"github.com/anagnostou/marketscope/internal/server"
	"github.com/anagnostou/marketscope/pkg/logger"
)

func main() {
	// Load configuration first to get the log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting MarketScope")

	// Scores database holds every analysis record ever produced
	scoresDB, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "scores.db"),
		Name: "scores",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open scores database")
	}
	defer scoresDB.Close()

	repo := analysis.NewRepository(scoresDB.Conn(), log)
	if err := repo.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate scores database")
	}

	analysisService := analysis.NewService(repo, log)
	rankingService := ranking.NewService(log)

	// Periodic re-scoring keeps stored analyses current after scorer changes
	sched := scheduler.New(log)
	if cfg.RescoreSchedule != "" {
		rescoreJob := scheduler.NewRescoreJob(analysisService, log)
		if err := sched.AddJob(cfg.RescoreSchedule, rescoreJob); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RescoreSchedule).Msg("Failed to register re-score job")
		}
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:              log,
		ScoresDB:         scoresDB,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		AnalysisHandlers: analysishandlers.NewHandlers(analysisService, log),
		RankingHandlers:  ranking.NewHandlers(analysisService, rankingService, log),
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Block until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
