package models

import (
	"time"
)

type SessionInfo struct {
	Token       string    `json:"token"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Remember    bool      `json:"remember"`
	CreatedTime time.Time `json:"created_dttm_utc"`
}
