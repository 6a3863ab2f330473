package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) ApplyMigrations(dir string) error {
	return nil
}

func (m *MockStore) EnsureSeeds() error {
	return nil
}

func (m *MockStore) CreateUser(user *models.User) error {
	return nil
}

func (m *MockStore) AuthenticateUser(name, password string) (*models.User, error) {
	return nil, nil
}

func (m *MockStore) GetUserByName(name string) (*models.User, error) {
	return nil, nil
}

func (m *MockStore) ListUsers() ([]models.User, error) {
	return nil, nil
}

func (m *MockStore) CreateGrading(g *models.Grading) error {
	return nil
}

func (m *MockStore) GetGrading(id int64) (*models.Grading, error) {
	return nil, nil
}

func (m *MockStore) ListGradings(username string) ([]models.Grading, error) {
	return nil, nil
}

func (m *MockStore) ListErrorTypeStats(username string) ([]models.ErrorTypeStat, error) {
	return nil, nil
}

func (m *MockStore) GetInviteCode(code string) (*models.InviteCode, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InviteCode), args.Error(1)
}

func (m *MockStore) PutInviteCode(code models.InviteCode) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockStore) DeleteInviteCode(code string) error {
	return nil
}

func (m *MockStore) ListInviteCodes() ([]models.InviteCode, error) {
	return nil, nil
}

func (m *MockStore) ConsumeInviteCode(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) MarkInviteCodeStatus(code, status string) error {
	args := m.Called(code, status)
	return args.Error(0)
}

func (m *MockStore) CreateClass(c *models.Class) error {
	return nil
}

func (m *MockStore) ListClassesByGrade(grade string) ([]models.Class, error) {
	return nil, nil
}

func newTestGatekeeper(s *MockStore, now time.Time) *Gatekeeper {
	g := NewGatekeeper(s)
	g.now = func() time.Time { return now }
	return g
}

func activeCode(now time.Time) *models.InviteCode {
	return &models.InviteCode{
		Code:       "STUDENT2023",
		Role:       models.RoleStudent,
		Status:     models.CodeStatusActive,
		MaxUses:    1,
		UsedCount:  0,
		ExpiryDate: now.AddDate(0, 0, 30).Unix(),
		CreatedAt:  now.Unix(),
		CreatedBy:  "system",
	}
}

func TestGatekeeper_Consume(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("unknown code", func(t *testing.T) {
		s := new(MockStore)
		s.On("GetInviteCode", "NOPE").Return(nil, nil)

		_, err := newTestGatekeeper(s, now).Consume("NOPE", models.RoleStudent)
		assert.ErrorIs(t, err, ErrCodeNotFound)
		s.AssertExpectations(t)
	})

	t.Run("inactive code checked before role", func(t *testing.T) {
		code := activeCode(now)
		code.Status = models.CodeStatusUsed

		s := new(MockStore)
		s.On("GetInviteCode", code.Code).Return(code, nil)

		_, err := newTestGatekeeper(s, now).Consume(code.Code, models.RoleTeacher)
		assert.ErrorIs(t, err, ErrCodeInactive)
	})

	t.Run("role mismatch", func(t *testing.T) {
		code := activeCode(now)

		s := new(MockStore)
		s.On("GetInviteCode", code.Code).Return(code, nil)

		_, err := newTestGatekeeper(s, now).Consume(code.Code, models.RoleTeacher)
		assert.ErrorIs(t, err, ErrRoleMismatch)
	})

	t.Run("expired code gets marked expired", func(t *testing.T) {
		code := activeCode(now)
		code.ExpiryDate = now.AddDate(0, 0, -1).Unix()

		s := new(MockStore)
		s.On("GetInviteCode", code.Code).Return(code, nil)
		s.On("MarkInviteCodeStatus", code.Code, models.CodeStatusExpired).Return(nil)

		_, err := newTestGatekeeper(s, now).Consume(code.Code, models.RoleStudent)
		assert.ErrorIs(t, err, ErrCodeExpired)
		s.AssertExpectations(t)
	})

	t.Run("lost consume race repairs status", func(t *testing.T) {
		code := activeCode(now)

		s := new(MockStore)
		s.On("GetInviteCode", code.Code).Return(code, nil)
		s.On("ConsumeInviteCode", code.Code).Return(false, nil)
		s.On("MarkInviteCodeStatus", code.Code, models.CodeStatusUsed).Return(nil)

		_, err := newTestGatekeeper(s, now).Consume(code.Code, models.RoleStudent)
		assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
		s.AssertExpectations(t)
	})

	t.Run("successful consume", func(t *testing.T) {
		code := activeCode(now)

		s := new(MockStore)
		s.On("GetInviteCode", code.Code).Return(code, nil)
		s.On("ConsumeInviteCode", code.Code).Return(true, nil)

		got, err := newTestGatekeeper(s, now).Consume(code.Code, models.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, models.CodeStatusUsed, got.Status)
		assert.Equal(t, 1, got.UsedCount)
		s.AssertNotCalled(t, "MarkInviteCodeStatus", mock.Anything, mock.Anything)
	})
}

func TestGatekeeper_Generate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("generates a valid single-use code", func(t *testing.T) {
		s := new(MockStore)
		s.On("PutInviteCode", mock.AnythingOfType("models.InviteCode")).Return(nil)

		code, err := newTestGatekeeper(s, now).Generate(models.RoleTeacher, 30, "tg:12345")
		require.NoError(t, err)

		assert.Len(t, code.Code, 8)
		assert.Equal(t, models.RoleTeacher, code.Role)
		assert.Equal(t, models.CodeStatusActive, code.Status)
		assert.Equal(t, 1, code.MaxUses)
		assert.Equal(t, now.AddDate(0, 0, 30).Unix(), code.ExpiryDate)
		assert.Equal(t, "tg:12345", code.CreatedBy)
		s.AssertExpectations(t)
	})

	t.Run("rejects non-positive expiry", func(t *testing.T) {
		s := new(MockStore)

		_, err := newTestGatekeeper(s, now).Generate(models.RoleStudent, 0, "system")
		assert.Error(t, err)
		s.AssertNotCalled(t, "PutInviteCode", mock.Anything)
	})
}
