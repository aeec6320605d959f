package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chowhub/internal/api"
	"chowhub/internal/auth"
	"chowhub/internal/catalog"
	"chowhub/internal/config"
	"chowhub/internal/database"
	"chowhub/internal/inventory"
	"chowhub/internal/orders"
	"chowhub/internal/recipes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port       = flag.Int("port", 0, "API server port (overrides config)")
	configFile = flag.String("config", "", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	db, err := database.Open(cfg.Database.Dialect, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	var recipeClient *recipes.Client
	if cfg.RecipeCatalog.APIKey != "" {
		recipeClient, err = recipes.NewClient(cfg.RecipeCatalog.BaseURL, cfg.RecipeCatalog.APIKey)
		if err != nil {
			log.Fatalf("Failed to initialize recipe catalog client: %v", err)
		}
	} else {
		log.Println("Recipe catalog key not configured, suggestions disabled")
	}

	server := api.NewServer(
		inventory.NewService(db),
		catalog.NewService(db),
		orders.NewService(db),
		recipeClient,
		tokens,
	)

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
