package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/analysis"
	"github.com/shrimpsizemoose/rodpenna/internal/export"
	"github.com/shrimpsizemoose/rodpenna/internal/metrics"
	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

type gradingRequest struct {
	Subject  string `json:"subject"`
	DataType string `json:"data_type"`
	Content  string `json:"content"`
}

// HandleCreateGrading runs the submitted homework through the upstream model
// (or the demo generator) and persists the structured outcome.
func (h *GradeHandler) HandleCreateGrading(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(duration)
	}()

	username, err := h.requestUser(r)
	if err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req gradingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Grader.Grade(r.Context(), req.DataType, req.Content)
	if err != nil {
		h.writeError(w, err, "Grading failed")
		return
	}

	record := models.Grading{
		Username:    username,
		Date:        time.Now().Unix(),
		Subject:     req.Subject,
		Score:       result.Score,
		Comment:     result.Comment,
		Issues:      result.Issues,
		Suggestions: result.Suggestions,
		DataType:    req.DataType,
		Content:     req.Content,
	}
	if err := record.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Store.CreateGrading(&record); err != nil {
		h.writeError(w, err, "Failed to save grading")
		return
	}

	metrics.GradingsTotal.WithLabelValues(record.Subject, record.DataType).Inc()
	metrics.GradingScoreHistogram.WithLabelValues(record.Subject).Observe(float64(record.Score))

	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, record)
}

func (h *GradeHandler) HandleListGradings(w http.ResponseWriter, r *http.Request) {
	username, err := h.requestUser(r)
	if err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	gradings, err := h.service.Store.ListGradings(username)
	if err != nil {
		h.writeError(w, err, "Failed to fetch gradings")
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"rows": gradings,
	})
}

func (h *GradeHandler) HandleListErrorStats(w http.ResponseWriter, r *http.Request) {
	username, err := h.requestUser(r)
	if err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.Store.ListErrorTypeStats(username)
	if err != nil {
		h.writeError(w, err, "Failed to fetch error stats")
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"rows": stats,
	})
}

func (h *GradeHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	username, err := h.requestUser(r)
	if err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.Store.ListErrorTypeStats(username)
	if err != nil {
		h.writeError(w, err, "Failed to fetch error stats")
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"rows": analysis.Recommend(stats),
	})
}

// HandleReport renders a self-contained HTML report for one grading.
func (h *GradeHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	username, err := h.requestUser(r)
	if err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid grading id", http.StatusBadRequest)
		return
	}

	record, err := h.service.Store.GetGrading(id)
	if err != nil {
		h.writeError(w, err, "Failed to fetch grading")
		return
	}
	if record == nil || record.Username != username {
		http.Error(w, "Grading not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.RenderReport(w, record); err != nil {
		logger.Error.Printf("Failed to render report: %v", err)
	}
}
