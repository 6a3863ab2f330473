package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/app"
	"github.com/shrimpsizemoose/rodpenna/internal/grading"
	"github.com/shrimpsizemoose/rodpenna/internal/invite"
	"github.com/shrimpsizemoose/rodpenna/internal/models"
	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

type GradeHandler struct {
	service *app.Service
}

func NewGradeHandler(service *app.Service) *GradeHandler {
	return &GradeHandler{
		service: service,
	}
}

func (h *GradeHandler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *GradeHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	logger.Error.Printf("%s: %v", fallback, err)
	http.Error(w, err.Error(), httpStatusFor(err, http.StatusInternalServerError))
}

func httpStatusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, store.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, invite.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, invite.ErrCodeInactive),
		errors.Is(err, invite.ErrRoleMismatch),
		errors.Is(err, invite.ErrCodeExpired),
		errors.Is(err, invite.ErrCodeAlreadyUsed):
		return http.StatusForbidden
	case errors.Is(err, grading.ErrUpstreamRequest):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrStoreUnavailable), errors.Is(err, store.ErrStoreBlocked):
		return http.StatusServiceUnavailable
	default:
		return fallback
	}
}

// requestUser resolves and authorizes the user the request acts for.
func (h *GradeHandler) requestUser(r *http.Request) (string, error) {
	username := r.Header.Get(h.service.Config.Auth.UserHeader)
	if username == "" {
		return "", errors.New("no username specified")
	}

	if err := h.service.ValidateAuthAndUser(r, username); err != nil {
		return "", err
	}
	return username, nil
}

// requireTeacher gates the admin surface: the acting user must exist and
// hold the teacher role.
func (h *GradeHandler) requireTeacher(r *http.Request) (string, error) {
	username, err := h.requestUser(r)
	if err != nil {
		return "", err
	}

	user, err := h.service.Store.GetUserByName(username)
	if err != nil {
		return "", err
	}
	if user == nil || user.Role != models.RoleTeacher {
		return "", errors.New("admin surface requires a teacher account")
	}
	return username, nil
}
