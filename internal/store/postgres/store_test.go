package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

// setupTestDB spins up a throwaway Postgres container and initializes schema
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	postgres, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := postgres.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		postgres.Terminate(ctx)
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres integration tests. Use -short=false to run them.")
		os.Exit(0)
	}
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func TestUserRoundTrip(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	user := &models.User{
		Name:      "zhang.san",
		Password:  "secret123",
		Role:      models.RoleStudent,
		StudentID: "s-001",
		ClassRoom: "三年二班",
	}

	t.Run("create user", func(t *testing.T) {
		require.NoError(t, s.CreateUser(user))
		assert.NotEmpty(t, user.ID)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		dup := &models.User{
			Name:      "zhang.san",
			Password:  "other",
			Role:      models.RoleStudent,
			StudentID: "s-002",
		}
		assert.ErrorIs(t, s.CreateUser(dup), store.ErrDuplicateUser)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := s.AuthenticateUser("zhang.san", "secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestGradingWithErrorStats(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	g := &models.Grading{
		Username: "wang.wu",
		Subject:  models.SubjectMath,
		Score:    88,
		Comment:  "还不错",
		Issues:   models.IssueList{"第2题计算错误"},
		DataType: models.DataTypeText,
	}

	require.NoError(t, s.CreateGrading(g))
	assert.NotZero(t, g.ID, "RETURNING id must populate the grading")

	got, err := s.GetGrading(g.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.IssueList{"第2题计算错误"}, got.Issues)

	require.NoError(t, s.CreateGrading(&models.Grading{
		Username: "wang.wu",
		Subject:  models.SubjectMath,
		Score:    91,
		Issues:   models.IssueList{"运算粗心"},
		DataType: models.DataTypeImage,
	}))

	stats, err := s.ListErrorTypeStats("wang.wu")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "计算错误", stats[0].Type)
	assert.Equal(t, 2, stats[0].Count)
}

func TestInviteConsumeIsAtomic(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	require.NoError(t, s.PutInviteCode(models.InviteCode{
		Code:       "PGRACE01",
		Role:       models.RoleStudent,
		Status:     models.CodeStatusActive,
		MaxUses:    1,
		ExpiryDate: now.AddDate(0, 0, 30).Unix(),
		CreatedAt:  now.Unix(),
		CreatedBy:  "system",
	}))

	first, err := s.ConsumeInviteCode("PGRACE01")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := s.ConsumeInviteCode("PGRACE01")
	require.NoError(t, err)
	assert.False(t, second)

	got, err := s.GetInviteCode("PGRACE01")
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsedCount)
	assert.Equal(t, models.CodeStatusUsed, got.Status)
}

func TestSeedsAndClasses(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, s.EnsureSeeds())

	student, err := s.GetInviteCode("STUDENT2023")
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, models.RoleStudent, student.Role)

	c := &models.Class{Grade: "三年级", HeadTeacher: "李老师"}
	require.NoError(t, s.CreateClass(c))
	assert.NotZero(t, c.ClassID)

	classes, err := s.ListClassesByGrade("三年级")
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}
