package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrimpsizemoose/rodpenna/internal/analysis"
	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

type GradeStore interface {
	Close() error
	ApplyMigrations(dir string) error
	EnsureSeeds() error

	CreateUser(user *models.User) error
	AuthenticateUser(name, password string) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	ListUsers() ([]models.User, error)

	CreateGrading(g *models.Grading) error
	GetGrading(id int64) (*models.Grading, error)
	ListGradings(username string) ([]models.Grading, error)
	ListErrorTypeStats(username string) ([]models.ErrorTypeStat, error)

	GetInviteCode(code string) (*models.InviteCode, error)
	PutInviteCode(code models.InviteCode) error
	DeleteInviteCode(code string) error
	ListInviteCodes() ([]models.InviteCode, error)
	ConsumeInviteCode(code string) (bool, error)
	MarkInviteCodeStatus(code, status string) error

	CreateClass(c *models.Class) error
	ListClassesByGrade(grade string) ([]models.Class, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

const userColumns = `
	id,
	name,
	password,
	role,
	COALESCE(student_id, '') AS student_id,
	COALESCE(class_room, '') AS class_room,
	COALESCE(teacher_id, '') AS teacher_id,
	COALESCE(subjects, '') AS subjects,
	created_at
`

const gradingColumns = `
	id,
	username,
	date,
	subject,
	score,
	COALESCE(comment, '') AS comment,
	COALESCE(issues, '[]') AS issues,
	COALESCE(suggestions, '') AS suggestions,
	data_type,
	COALESCE(content, '') AS content
`

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect
// if needed. Applied files are recorded in schema_migrations, so re-running
// against a current schema is a no-op.
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	if _, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		var applied int
		err := s.DB.Get(&applied, s.Converter(`
			SELECT COUNT(*) FROM schema_migrations WHERE version = ?
		`), file.Name())
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", file.Name(), err)
		}
		if applied > 0 {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}

		if _, err := s.DB.Exec(s.Converter(`
			INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)
		`), file.Name(), time.Now().Unix()); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

// EnsureSeeds inserts the two default registration codes when the invite_codes
// table is empty.
func (s *BaseStore) EnsureSeeds() error {
	var n int
	if err := s.DB.Get(&n, `SELECT COUNT(*) FROM invite_codes`); err != nil {
		return fmt.Errorf("failed to count invite codes: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now().Unix()
	expiry := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC).Unix()
	seeds := []models.InviteCode{
		{
			Code:       "STUDENT2023",
			Role:       models.RoleStudent,
			Status:     models.CodeStatusActive,
			MaxUses:    1,
			ExpiryDate: expiry,
			CreatedAt:  now,
			CreatedBy:  "system",
		},
		{
			Code:       "TEACHER2023",
			Role:       models.RoleTeacher,
			Status:     models.CodeStatusActive,
			MaxUses:    1,
			ExpiryDate: expiry,
			CreatedAt:  now,
			CreatedBy:  "system",
		},
	}

	for _, seed := range seeds {
		if err := s.PutInviteCode(seed); err != nil {
			return fmt.Errorf("failed to seed invite code %s: %w", seed.Code, err)
		}
	}

	return nil
}

func (s *BaseStore) CreateUser(user *models.User) error {
	var existing int
	err := s.DB.Get(&existing, s.Converter(`
		SELECT COUNT(*) FROM users WHERE name = ? AND role = ?
	`), user.Name, user.Role)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if existing > 0 {
		return ErrDuplicateUser
	}

	if user.ID == "" {
		id, err := generateUserID()
		if err != nil {
			return err
		}
		user.ID = id
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	_, err = s.DB.NamedExec(`
		INSERT INTO users (id, name, password, role, student_id, class_room, teacher_id, subjects, created_at)
		VALUES (:id, :name, :password, :role,
			NULLIF(:student_id, ''), NULLIF(:class_room, ''),
			NULLIF(:teacher_id, ''), NULLIF(:subjects, ''), :created_at)
	`, user)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *BaseStore) GetUserByName(name string) (*models.User, error) {
	var user models.User
	query := s.Converter(`SELECT ` + userColumns + ` FROM users WHERE name = ?`)

	err := s.DB.Get(&user, query, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *BaseStore) AuthenticateUser(name, password string) (*models.User, error) {
	user, err := s.GetUserByName(name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *BaseStore) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.DB.Select(&users, `SELECT `+userColumns+` FROM users ORDER BY role, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *BaseStore) GetGrading(id int64) (*models.Grading, error) {
	var g models.Grading
	query := s.Converter(`SELECT ` + gradingColumns + ` FROM gradings WHERE id = ?`)

	err := s.DB.Get(&g, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grading: %w", err)
	}
	return &g, nil
}

func (s *BaseStore) ListGradings(username string) ([]models.Grading, error) {
	var gradings []models.Grading
	query := s.Converter(`
		SELECT ` + gradingColumns + `
		FROM gradings
		WHERE username = ?
		ORDER BY date DESC
	`)

	err := s.DB.Select(&gradings, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list gradings: %w", err)
	}
	return gradings, nil
}

func (s *BaseStore) ListErrorTypeStats(username string) ([]models.ErrorTypeStat, error) {
	var stats []models.ErrorTypeStat
	query := s.Converter(`
		SELECT id, username, type, count,
			COALESCE(subject, '') AS subject,
			created_at, last_updated
		FROM error_types
		WHERE username = ?
	`)

	err := s.DB.Select(&stats, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list error stats: %w", err)
	}
	return stats, nil
}

// UpsertErrorStatsTx derives error-type counters from a grading's issues and
// accumulates them into error_types, keyed (username, type).
func (s *BaseStore) UpsertErrorStatsTx(tx *sqlx.Tx, g *models.Grading) error {
	now := time.Now().Unix()
	query := s.Converter(`
		INSERT INTO error_types (username, type, count, subject, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (username, type) DO UPDATE SET
		count = error_types.count + excluded.count,
		last_updated = excluded.last_updated
	`)

	for _, tc := range analysis.ExtractErrorTypes(g.Subject, g.Issues) {
		if _, err := tx.Exec(query, g.Username, tc.Type, tc.Count, g.Subject, now, now); err != nil {
			return fmt.Errorf("failed to upsert error stat %s: %w", tc.Type, err)
		}
	}
	return nil
}

func (s *BaseStore) GetInviteCode(code string) (*models.InviteCode, error) {
	var ic models.InviteCode
	query := s.Converter(`
		SELECT code, role, status, max_uses, used_count, expiry_date, created_at, created_by
		FROM invite_codes
		WHERE code = ?
	`)

	err := s.DB.Get(&ic, query, code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}
	return &ic, nil
}

func (s *BaseStore) PutInviteCode(code models.InviteCode) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO invite_codes (code, role, status, max_uses, used_count, expiry_date, created_at, created_by)
		VALUES (:code, :role, :status, :max_uses, :used_count, :expiry_date, :created_at, :created_by)
		ON CONFLICT (code) DO UPDATE SET
		role = :role,
		status = :status,
		max_uses = :max_uses,
		used_count = :used_count,
		expiry_date = :expiry_date,
		created_by = :created_by
	`, code)
	if err != nil {
		return fmt.Errorf("failed to put invite code: %w", err)
	}
	return nil
}

func (s *BaseStore) DeleteInviteCode(code string) error {
	_, err := s.DB.Exec(s.Converter(`DELETE FROM invite_codes WHERE code = ?`), code)
	if err != nil {
		return fmt.Errorf("failed to delete invite code: %w", err)
	}
	return nil
}

func (s *BaseStore) ListInviteCodes() ([]models.InviteCode, error) {
	var codes []models.InviteCode
	err := s.DB.Select(&codes, `
		SELECT code, role, status, max_uses, used_count, expiry_date, created_at, created_by
		FROM invite_codes
		ORDER BY created_at DESC, code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite codes: %w", err)
	}
	return codes, nil
}

// ConsumeInviteCode spends a single-use code with one conditional update, so
// two concurrent registrations cannot both win the same code. Returns false
// when the code was already spent or is no longer active.
func (s *BaseStore) ConsumeInviteCode(code string) (bool, error) {
	res, err := s.DB.Exec(s.Converter(`
		UPDATE invite_codes
		SET used_count = used_count + 1, status = 'used'
		WHERE code = ? AND status = 'active' AND used_count = 0
	`), code)
	if err != nil {
		return false, fmt.Errorf("failed to consume invite code: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read consume result: %w", err)
	}
	return affected == 1, nil
}

func (s *BaseStore) MarkInviteCodeStatus(code, status string) error {
	_, err := s.DB.Exec(s.Converter(`
		UPDATE invite_codes SET status = ? WHERE code = ?
	`), status, code)
	if err != nil {
		return fmt.Errorf("failed to mark invite code %s: %w", status, err)
	}
	return nil
}

func (s *BaseStore) ListClassesByGrade(grade string) ([]models.Class, error) {
	var classes []models.Class
	query := s.Converter(`
		SELECT class_id, grade, COALESCE(head_teacher, '') AS head_teacher
		FROM classes
		WHERE grade = ?
		ORDER BY class_id
	`)

	err := s.DB.Select(&classes, query, grade)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func generateUserID() (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate user id: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
