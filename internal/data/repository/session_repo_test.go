package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sessionColumns = []string{"id", "user_id", "token", "user_agent", "ip_address", "expires_at", "revoked_at", "created_at"}

func TestSessionRepository_FindValidSession(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	token, userID := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions")).
		WithArgs(token).
		WillReturnRows(pgxmock.NewRows(sessionColumns).
			AddRow(uuid.New(), userID, token, strPtr("curl"), (*string)(nil), now.Add(time.Hour), (*time.Time)(nil), now))

	session, err := repo.FindValidSession(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, userID, session.UserID)
	assert.Nil(t, session.RevokedAt)
	assert.True(t, session.ExpiresAt.After(now))
}

func TestSessionRepository_Revoke_AlreadyGone(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	token := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions")).
		WithArgs(token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Revoke(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionGone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_CleanExpiredSessions(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions")).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
