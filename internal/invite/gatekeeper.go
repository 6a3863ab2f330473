// Package invite manages single-use registration codes: validation,
// consumption, and admin generation.
package invite

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

var (
	ErrCodeNotFound    = errors.New("invite code not found")
	ErrCodeInactive    = errors.New("invite code is not active")
	ErrRoleMismatch    = errors.New("invite code is bound to a different role")
	ErrCodeExpired     = errors.New("invite code has expired")
	ErrCodeAlreadyUsed = errors.New("invite code has already been used")
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type Gatekeeper struct {
	store store.GradeStore
	now   func() time.Time
}

func NewGatekeeper(s store.GradeStore) *Gatekeeper {
	return &Gatekeeper{
		store: s,
		now:   time.Now,
	}
}

// Consume validates a code against the requested role and spends it. The
// spend itself is a single conditional update in the store, so concurrent
// registrations racing on one code produce exactly one winner; the loser
// gets ErrCodeAlreadyUsed.
func (g *Gatekeeper) Consume(codeValue, role string) (*models.InviteCode, error) {
	code, err := g.store.GetInviteCode(codeValue)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrCodeNotFound
	}

	if code.Status != models.CodeStatusActive {
		return nil, ErrCodeInactive
	}

	if code.Role != role {
		return nil, ErrRoleMismatch
	}

	if code.ExpiredAt(g.now()) {
		if err := g.store.MarkInviteCodeStatus(codeValue, models.CodeStatusExpired); err != nil {
			logger.Error.Printf("Failed to mark code %s expired: %v", codeValue, err)
		}
		return nil, ErrCodeExpired
	}

	consumed, err := g.store.ConsumeInviteCode(codeValue)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// lost a race or the used flag was out of sync; repair it
		if err := g.store.MarkInviteCodeStatus(codeValue, models.CodeStatusUsed); err != nil {
			logger.Error.Printf("Failed to mark code %s used: %v", codeValue, err)
		}
		return nil, ErrCodeAlreadyUsed
	}

	code.UsedCount++
	code.Status = models.CodeStatusUsed
	return code, nil
}

// Generate creates a fresh single-use code bound to a role.
func (g *Gatekeeper) Generate(role string, expiryDays int, createdBy string) (*models.InviteCode, error) {
	if expiryDays <= 0 {
		return nil, fmt.Errorf("expiry days must be positive, got %d", expiryDays)
	}

	value, err := randomCode(8)
	if err != nil {
		return nil, err
	}

	now := g.now()
	code := models.InviteCode{
		Code:       value,
		Role:       role,
		Status:     models.CodeStatusActive,
		MaxUses:    1,
		UsedCount:  0,
		ExpiryDate: now.AddDate(0, 0, expiryDays).Unix(),
		CreatedAt:  now.Unix(),
		CreatedBy:  createdBy,
	}
	if err := code.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invite code: %w", err)
	}

	if err := g.store.PutInviteCode(code); err != nil {
		return nil, err
	}
	return &code, nil
}

func randomCode(length int) (string, error) {
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range randomBytes {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
