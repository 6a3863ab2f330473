package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/rodpenna/internal/grading"
	"github.com/shrimpsizemoose/rodpenna/internal/invite"
	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

type Service struct {
	Config   *Config
	Store    store.GradeStore
	Sessions *SessionManager
	Gate     *invite.Gatekeeper
	Grader   *grading.Client
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	if err := store.EnsureSeeds(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	sessions, err := NewSessionManager(config)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to init sessions: %w", err)
	}

	return &Service{
		Config:   config,
		Store:    store,
		Sessions: sessions,
		Gate:     invite.NewGatekeeper(store),
		Grader:   grading.NewClient(&config.Grading),
	}, nil
}

// ValidateAuthAndUser checks the request's bearer token against the session
// belonging to the user the request claims to act for.
func (s *Service) ValidateAuthAndUser(r *http.Request, username string) error {
	if !s.Config.Server.EnableAuth {
		return nil
	}

	authHeader := r.Header.Get(s.Config.Auth.TokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("Invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	return s.Sessions.Validate(r.Context(), username, token)
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Sessions.Close(); err != nil {
		errs = append(errs, fmt.Errorf("sessions: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
