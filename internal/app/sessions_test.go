package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

func TestSessionManagerDisabled(t *testing.T) {
	config := &Config{}
	config.Server.EnableAuth = false

	m, err := NewSessionManager(config)
	require.NoError(t, err)

	ctx := context.Background()
	user := &models.User{Name: "zhang.san", Role: models.RoleStudent}

	t.Run("create without redis", func(t *testing.T) {
		session, err := m.Create(ctx, user, true)
		require.NoError(t, err)
		assert.Equal(t, "zhang.san", session.Username)
		assert.Empty(t, session.Token)
	})

	t.Run("validate accepts anything", func(t *testing.T) {
		assert.NoError(t, m.Validate(ctx, "zhang.san", "whatever"))
	})

	t.Run("destroy is a no-op", func(t *testing.T) {
		assert.NoError(t, m.Destroy(ctx, "whatever"))
	})
}

func TestGenerateToken(t *testing.T) {
	first, err := generateToken()
	require.NoError(t, err)
	second, err := generateToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "sk-rodpenna-"))
	assert.Len(t, first, len("sk-rodpenna-")+24)
	assert.NotEqual(t, first, second)
}
