package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fsagrahari23/webagentic/models"
	"github.com/fsagrahari23/webagentic/services/builder"
	"github.com/fsagrahari23/webagentic/services/project"

	"github.com/gorilla/mux"
)

type BuildHandler struct {
	builder *builder.Service
	store   *project.Store
}

func NewBuildHandler(builderService *builder.Service, store *project.Store) *BuildHandler {
	return &BuildHandler{builder: builderService, store: store}
}

func (h *BuildHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/build", h.HandleBuild).Methods("POST")
	router.HandleFunc("/api/websites", h.HandleListWebsites).Methods("GET")
}

func (h *BuildHandler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log.Printf("[INFO] Received build request")

	var req models.BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode build request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload", start)
		return
	}

	if strings.TrimSpace(req.UserPrompt) == "" {
		log.Printf("[ERROR] Empty userPrompt in build request")
		h.writeErrorResponse(w, http.StatusBadRequest, "userPrompt is required", start)
		return
	}

	result, err := h.builder.ProcessBuild(r.Context(), req.UserPrompt)
	if err != nil {
		var validationErr *builder.ValidationError
		if errors.As(err, &validationErr) {
			log.Printf("[ERROR] Build request validation failed: %v", err)
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), start)
			return
		}

		log.Printf("[ERROR] Build failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error(), start)
		return
	}

	log.Printf("[INFO] Build %s completed successfully", result.ProjectID)
	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *BuildHandler) HandleListWebsites(w http.ResponseWriter, r *http.Request) {
	websites, err := h.store.ListWebsites(r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("[ERROR] Failed to list websites: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error(), time.Now())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.WebsiteListResponse{
		Success:  true,
		Websites: websites,
		Count:    len(websites),
	})
}

func (h *BuildHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *BuildHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, start time.Time) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
		"stats": map[string]string{
			"executionTime": time.Since(start).Round(time.Millisecond).String(),
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	})
}
