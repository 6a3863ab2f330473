// internal/store/sqlite/store.go
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

type SQLiteStore struct {
	store.BaseStore
}

func NewSQLiteStore(dsn, migrationsDir string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite connect: %v", store.ErrStoreUnavailable, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			return query
		},
	}}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "database is locked") {
			return nil, fmt.Errorf("%w: %v", store.ErrStoreBlocked, err)
		}
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, translateToSQLite)
}

// translateToSQLite converts Postgres SQL to SQLite dialect
func translateToSQLite(sql string) string {
	replacements := map[string]string{
		"BIGSERIAL PRIMARY KEY": "INTEGER PRIMARY KEY AUTOINCREMENT",
		"BIGINT":                "INTEGER",
		"now()":                 "CURRENT_TIMESTAMP",
	}
	result := sql
	for from, to := range replacements {
		result = strings.ReplaceAll(result, from, to)
	}
	return result
}

// CreateGrading stores the record and its derived error-type counters in one
// transaction. The grading id comes from sqlite's rowid.
func (s *SQLiteStore) CreateGrading(g *models.Grading) error {
	if g.Date == 0 {
		g.Date = time.Now().Unix()
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin grading tx: %w", err)
	}

	res, err := tx.NamedExec(`
		INSERT INTO gradings (username, date, subject, score, comment, issues, suggestions, data_type, content)
		VALUES (:username, :date, :subject, :score, :comment, :issues, :suggestions, :data_type, :content)
	`, g)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create grading: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to read grading id: %w", err)
	}
	g.ID = id

	if err := s.UpsertErrorStatsTx(tx, g); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) CreateClass(c *models.Class) error {
	res, err := s.DB.NamedExec(`
		INSERT INTO classes (grade, head_teacher)
		VALUES (:grade, :head_teacher)
	`, c)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read class id: %w", err)
	}
	c.ClassID = id
	return nil
}
