package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/fsagrahari23/webagentic/config"
	"github.com/fsagrahari23/webagentic/handlers"
	"github.com/fsagrahari23/webagentic/services/builder"
	"github.com/fsagrahari23/webagentic/services/project"

	"github.com/gorilla/mux"
)

const version = "1.0.0"

var startTime = time.Now()

func main() {
	cfg := config.Load()

	if cfg.AnthropicAPIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY environment variable is required")
	}

	store, err := project.NewStore(cfg.ProjectsDir, cfg.PreviewBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize project store: %v", err)
	}

	builderService, err := builder.NewService(cfg.AnthropicAPIKey, store)
	if err != nil {
		log.Fatalf("Failed to initialize builder service: %v", err)
	}
	buildHandler := handlers.NewBuildHandler(builderService, store)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	buildHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	previewAddr := ":" + cfg.PreviewPort
	go func() {
		fmt.Printf("Preview server starting on port %s, serving %s\n", cfg.PreviewPort, store.Root())
		if err := http.ListenAndServe(previewAddr, handlers.NewPreviewHandler(store)); err != nil {
			log.Fatalf("Preview server failed to start: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"uptime":    time.Since(startTime).Round(time.Second).String(),
		"platform":  runtime.GOOS,
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
