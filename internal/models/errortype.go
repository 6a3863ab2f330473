package models

type ErrorTypeStat struct {
	ID          int64  `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	Type        string `db:"type" json:"type"`
	Count       int    `db:"count" json:"count"`
	Subject     string `db:"subject" json:"subject"`
	CreatedAt   int64  `db:"created_at" json:"created_at"`
	LastUpdated int64  `db:"last_updated" json:"last_updated"`
}
