// Package cmd provides the voxchat CLI.
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/voxchat/backend/api"
	"github.com/voxchat/backend/config"
	"github.com/voxchat/backend/db"
	"github.com/voxchat/backend/llm"
	"github.com/voxchat/backend/service"
	"github.com/voxchat/backend/store"
)

var rootCmd = &cobra.Command{
	Use:          "voxchat",
	Short:        "Chat, voice, and document backend",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log.Printf("Starting voxchat...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabasePath)
	log.Printf("Model: %s", cfg.GeminiModel)

	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer conn.Close()

	st := store.NewSQLiteStore(conn)

	var gen llm.Generator
	if cfg.GeminiAPIKey == "" {
		log.Printf("WARN: GEMINI_API_KEY not set, AI endpoints will report unavailable")
		gen = llm.Unavailable()
	} else {
		gen, err = llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("initializing gemini client: %w", err)
		}
	}

	svc := service.New(st, gen, cfg)
	h := api.NewHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("API started on port %d", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown gracefully: %v", err)
	}
	log.Println("Stopped")
	return nil
}
