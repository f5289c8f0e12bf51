package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/animarpg/anima-api/internal/config"
	"github.com/animarpg/anima-api/internal/dice"
	apiv1 "github.com/animarpg/anima-api/internal/handlers/api/v1"
	characterorc "github.com/animarpg/anima-api/internal/orchestrators/character"
	"github.com/animarpg/anima-api/internal/orchestrators/consumable"
	diceorc "github.com/animarpg/anima-api/internal/orchestrators/dice"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	"github.com/animarpg/anima-api/internal/pkg/idgen"
	redisclient "github.com/animarpg/anima-api/internal/redis"
	characterrepo "github.com/animarpg/anima-api/internal/repositories/character"
	"github.com/animarpg/anima-api/internal/repositories/encounter"
	itemrepo "github.com/animarpg/anima-api/internal/repositories/item"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the Anima API HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}

	realClock := clock.New()
	idGen := idgen.NewUUID("")

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
		Client: client,
		Clock:  realClock,
	})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}

	catalogRepo, err := itemrepo.NewRedisRepository(&itemrepo.Config{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create item repository: %w", err)
	}

	logRepo, err := rolllog.NewRedisRepository(&rolllog.Config{
		Client: client,
		Clock:  realClock,
	})
	if err != nil {
		return fmt.Errorf("failed to create roll log repository: %w", err)
	}

	encounterRepo, err := encounter.NewRedisRepository(&encounter.Config{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create encounter repository: %w", err)
	}

	roller := dice.NewRoller()
	soulDice := cfg.SoulDiceTable()

	characterService, err := characterorc.NewOrchestrator(&characterorc.Config{
		CharacterRepo: charRepo,
		ItemRepo:      catalogRepo,
		IDGenerator:   idGen,
	})
	if err != nil {
		return fmt.Errorf("failed to create character orchestrator: %w", err)
	}

	diceService, err := diceorc.NewOrchestrator(&diceorc.Config{
		RollLogRepo:   logRepo,
		CharacterRepo: charRepo,
		EncounterRepo: encounterRepo,
		Roller:        roller,
		IDGenerator:   idGen,
		Clock:         realClock,
		SoulDice:      soulDice,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice orchestrator: %w", err)
	}

	consumableService, err := consumable.NewOrchestrator(&consumable.Config{
		CharacterRepo: charRepo,
		ItemRepo:      catalogRepo,
		RollLogRepo:   logRepo,
		Roller:        roller,
		IDGenerator:   idGen,
		Clock:         realClock,
		SoulDice:      soulDice,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumable orchestrator: %w", err)
	}

	handler, err := apiv1.NewHandler(&apiv1.Config{
		CharacterService:  characterService,
		DiceService:       diceService,
		ConsumableService: consumableService,
	})
	if err != nil {
		return fmt.Errorf("failed to create API handler: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}

		slog.Info("Server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
