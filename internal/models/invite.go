package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	CodeStatusActive  = "active"
	CodeStatusUsed    = "used"
	CodeStatusExpired = "expired"
)

type InviteCode struct {
	Code       string `db:"code" json:"code" validate:"required"`
	Role       string `db:"role" json:"role" validate:"required,oneof=student teacher"`
	Status     string `db:"status" json:"status"`
	MaxUses    int    `db:"max_uses" json:"max_uses"`
	UsedCount  int    `db:"used_count" json:"used_count"`
	ExpiryDate int64  `db:"expiry_date" json:"expiry_date"`
	CreatedAt  int64  `db:"created_at" json:"created_at"`
	CreatedBy  string `db:"created_by" json:"created_by"`
}

func (c *InviteCode) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func (c *InviteCode) ExpiredAt(now time.Time) bool {
	return now.Unix() > c.ExpiryDate
}
