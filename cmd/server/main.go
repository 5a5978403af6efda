// Package main provides the focus API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.scopelab.io/focus-api/internal/adapter/store"
	"go.scopelab.io/focus-api/internal/adapter/store/catalog"
	"go.scopelab.io/focus-api/internal/adapter/store/csv"
	"go.scopelab.io/focus-api/internal/adapter/store/dispersion"
	httpHandler "go.scopelab.io/focus-api/internal/http"
	"go.scopelab.io/focus-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("focus-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	presetsDir := getEnv("PRESETS_DIR", "./data")
	dispersionDir := getEnv("DISPERSION_DIR", "")
	plotDir := getEnv("PLOT_DIR", "")

	log.Printf("Starting Focus API server...")
	log.Printf("Port: %s", port)
	log.Printf("Presets directory: %s", presetsDir)

	// Initialize stores.
	presetStore := csv.NewPresetStore(presetsDir)
	var presetLoader store.PresetLoader = presetStore

	// Index resolution: NetCDF dispersion tables when configured, built-in
	// Sellmeier catalog otherwise.
	var indexLoader store.IndexLoader
	if dispersionDir != "" {
		log.Printf("Dispersion directory: %s", dispersionDir)
		indexLoader = dispersion.NewStore(dispersionDir)
	} else {
		log.Printf("Dispersion tables disabled (using Sellmeier catalog)")
		indexLoader = catalog.NewStore()
	}

	if plotDir != "" {
		log.Printf("Debug plots directory: %s", plotDir)
	}

	// Initialize use case.
	focusUC := usecase.NewFocusUseCase(presetLoader, indexLoader, plotDir)

	// Setup router.
	router := httpHandler.SetupRouter(focusUC)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/focus/optimum")
	log.Printf("  - GET /v1/media")
	log.Printf("  - GET /v1/objectives")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Focus API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  focus-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                      Server port (default: 8080)")
	fmt.Println("  PRESETS_DIR               Objective preset CSV directory (default: ./data)")
	fmt.Println("  DISPERSION_DIR            NetCDF dispersion table directory (optional)")
	fmt.Println("  PLOT_DIR                  Debug plot output directory (optional)")
	fmt.Println("  CORS_ALLOWED_ORIGINS      Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  OBJECTIVE_OVERRIDES_PATH  Per-objective calibration overrides JSON (optional)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  focus-api")
	fmt.Println()
	fmt.Println("  # Start server on custom port")
	fmt.Println("  PORT=3000 focus-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health              Health check")
	fmt.Println("  GET /v1/media            List known media")
	fmt.Println("  GET /v1/objectives       List objective presets")
	fmt.Println("  GET /v1/focus/optimum    Compute the optimal stage position")
	fmt.Println()
}
