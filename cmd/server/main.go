package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/formcraft/formcraft-backend/internal/config"
	"github.com/formcraft/formcraft-backend/internal/database"
	"github.com/formcraft/formcraft-backend/internal/handler"
	"github.com/formcraft/formcraft-backend/internal/logger"
	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
	"github.com/formcraft/formcraft-backend/internal/router"
	"github.com/formcraft/formcraft-backend/internal/service"
	"github.com/formcraft/formcraft-backend/internal/validator"
	"github.com/formcraft/formcraft-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting FormCraft Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Snapshot Database ────────────────────────────────────────
	db, err := database.NewSnapshotDB(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot database")
	}
	defer db.Close()

	// ─── Start Snapshot Worker ─────────────────────────────────────────
	snapshotRepo := repository.NewSnapshotRepository(db)
	snapshotWorker := worker.NewSnapshotWorker(snapshotRepo, log)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		snapshotWorker.Start(workerCtx)
		close(workerDone)
	}()

	// ─── Initialize Repositories ───────────────────────────────────────
	// The library and header/footer stores rehydrate from the last
	// persisted snapshot; questionnaires live in memory only.
	libraryRepo := repository.NewLibraryRepository(snapshotWorker, log)
	if payload, _, ok, err := snapshotRepo.Load(ctx, repository.LibrarySlot); err != nil {
		log.Warn().Err(err).Msg("Failed to load library snapshot")
	} else if ok {
		libraryRepo.Rehydrate(payload)
	}

	headerFooterRepo := repository.NewHeaderFooterRepository(snapshotWorker, log)
	if payload, _, ok, err := snapshotRepo.Load(ctx, repository.HeaderFooterSlot); err != nil {
		log.Warn().Err(err).Msg("Failed to load header/footer snapshot")
	} else if ok {
		headerFooterRepo.Rehydrate(payload)
	}

	questionnaireRepo := repository.NewQuestionnaireRepository()

	// ─── Initialize Services ──────────────────────────────────────────
	libraryService := service.NewLibraryService(libraryRepo)
	headerFooterService := service.NewHeaderFooterService(headerFooterRepo)
	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, libraryRepo, headerFooterRepo, log)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Library:       handler.NewLibraryHandler(libraryService),
		Section:       handler.NewSectionHandler(libraryService),
		Question:      handler.NewQuestionHandler(libraryService),
		Header:        handler.NewHeaderFooterHandler(headerFooterService, model.HeaderFooterTypeHeader),
		Footer:        handler.NewHeaderFooterHandler(headerFooterService, model.HeaderFooterTypeFooter),
		Questionnaire: handler.NewQuestionnaireHandler(questionnaireService),
		Media:         handler.NewMediaHandler(mediaService),
		Meta:          handler.NewMetaHandler(),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the snapshot worker and wait until its final flush has
	// landed. Start returns only after draining the pending queue.
	workerCancel()
	<-workerDone

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
