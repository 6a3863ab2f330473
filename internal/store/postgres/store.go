package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

type PostgresStore struct {
	store.BaseStore
}

func NewPostgresStore(dsn, migrationsDir string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres connect: %v", store.ErrStoreUnavailable, err)
	}

	s := &PostgresStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			out := query
			for i := 1; strings.Contains(out, "?"); i++ {
				out = strings.Replace(out, "?", fmt.Sprintf("$%d", i), 1)
			}
			return out
		},
	}}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, nil)
}

// CreateGrading stores the record and its derived error-type counters in one
// transaction. Postgres hands the id back via RETURNING.
func (s *PostgresStore) CreateGrading(g *models.Grading) error {
	if g.Date == 0 {
		g.Date = time.Now().Unix()
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin grading tx: %w", err)
	}

	issues, err := g.Issues.Value()
	if err != nil {
		tx.Rollback()
		return err
	}

	var id int64
	err = tx.QueryRowx(`
		INSERT INTO gradings (username, date, subject, score, comment, issues, suggestions, data_type, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, g.Username, g.Date, g.Subject, g.Score, g.Comment, issues, g.Suggestions, g.DataType, g.Content).Scan(&id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create grading: %w", err)
	}
	g.ID = id

	if err := s.UpsertErrorStatsTx(tx, g); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) CreateClass(c *models.Class) error {
	var id int64
	err := s.DB.QueryRowx(`
		INSERT INTO classes (grade, head_teacher)
		VALUES ($1, $2)
		RETURNING class_id
	`, c.Grade, c.HeadTeacher).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	c.ClassID = id
	return nil
}
