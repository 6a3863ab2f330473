package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/metrics"
	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

type registerRequest struct {
	InviteCode string `json:"invite_code"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	StudentID  string `json:"student_id,omitempty"`
	ClassRoom  string `json:"class_room,omitempty"`
	TeacherID  string `json:"teacher_id,omitempty"`
	Subjects   string `json:"subjects,omitempty"`
}

// HandleRegister consumes an invite code and creates the user. A code spent
// on a registration that then fails duplicate checks stays spent, matching
// single-use semantics.
func (h *GradeHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user := models.User{
		Name:      req.Name,
		Password:  req.Password,
		Role:      req.Role,
		StudentID: req.StudentID,
		ClassRoom: req.ClassRoom,
		TeacherID: req.TeacherID,
		Subjects:  req.Subjects,
	}
	if err := user.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.service.Gate.Consume(req.InviteCode, req.Role); err != nil {
		metrics.InviteConsumptionsTotal.WithLabelValues("rejected").Inc()
		h.writeError(w, err, "Invite code rejected")
		return
	}
	metrics.InviteConsumptionsTotal.WithLabelValues("consumed").Inc()

	if err := h.service.Store.CreateUser(&user); err != nil {
		h.writeError(w, err, "Failed to register user")
		return
	}

	logger.Info.Printf("Registered %s %s", user.Role, user.Name)
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, user)
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (h *GradeHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.Store.AuthenticateUser(req.Name, req.Password)
	if err != nil {
		h.writeError(w, err, "Login failed")
		return
	}

	session, err := h.service.Sessions.Create(r.Context(), user, req.Remember)
	if err != nil {
		h.writeError(w, err, "Failed to create session")
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"user":    user,
		"session": session,
	})
}

func (h *GradeHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get(h.service.Config.Auth.TokenHeader)
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		http.Error(w, "No session token", http.StatusBadRequest)
		return
	}

	if err := h.service.Sessions.Destroy(r.Context(), token); err != nil {
		h.writeError(w, err, "Failed to destroy session")
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
