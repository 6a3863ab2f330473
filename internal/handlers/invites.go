package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/export"
)

func (h *GradeHandler) HandleAdminListInvites(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireTeacher(r); err != nil {
		logger.Error.Printf("Admin access denied: %v", err)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	codes, err := h.service.Store.ListInviteCodes()
	if err != nil {
		h.writeError(w, err, "Failed to list invite codes")
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"rows": codes,
	})
}

type generateInviteRequest struct {
	Role       string `json:"role"`
	ExpiryDays int    `json:"expiry_days"`
}

func (h *GradeHandler) HandleAdminGenerateInvite(w http.ResponseWriter, r *http.Request) {
	username, err := h.requireTeacher(r)
	if err != nil {
		logger.Error.Printf("Admin access denied: %v", err)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req generateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	code, err := h.service.Gate.Generate(req.Role, req.ExpiryDays, username)
	if err != nil {
		h.writeError(w, err, "Failed to generate invite code")
		return
	}

	logger.Info.Printf("Generated invite code %s for role %s", code.Code, code.Role)
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, code)
}

func (h *GradeHandler) HandleAdminDeleteInvite(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireTeacher(r); err != nil {
		logger.Error.Printf("Admin access denied: %v", err)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	code := r.PathValue("code")
	if code == "" {
		http.Error(w, "Invalid invite code", http.StatusBadRequest)
		return
	}

	if err := h.service.Store.DeleteInviteCode(code); err != nil {
		h.writeError(w, err, "Failed to delete invite code")
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *GradeHandler) HandleAdminExportInvites(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireTeacher(r); err != nil {
		logger.Error.Printf("Admin access denied: %v", err)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	codes, err := h.service.Store.ListInviteCodes()
	if err != nil {
		h.writeError(w, err, "Failed to list invite codes")
		return
	}

	filename := fmt.Sprintf("invite_codes_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteInviteCodesCSV(w, codes); err != nil {
		logger.Error.Printf("Failed to write CSV: %v", err)
	}
}
