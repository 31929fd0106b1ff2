package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"studyforge/internal/domain"
	"studyforge/internal/quizplay"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionTTL = 30 * time.Minute

func newPlaySession(id string) *quizplay.Session {
	quiz := domain.Quiz{
		ID:         "quiz-1",
		Topic:      "Go",
		Difficulty: "medium",
		Questions: []domain.Question{
			domain.MCQQuestion{
				Question:      "q1",
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: 0,
			},
		},
	}
	return quizplay.NewSession(id, quiz)
}

func TestRedisSessionStore_SaveAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db, sessionTTL)
	ctx := context.Background()

	session := newPlaySession("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	payload, err := json.Marshal(session)
	require.NoError(t, err)
	key := sessionKey(session.ID)

	mock.ExpectSet(key, payload, sessionTTL).SetVal("OK")
	require.NoError(t, store.Save(ctx, session))

	mock.ExpectGet(key).SetVal(string(payload))
	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, quizplay.StateInProgress, loaded.State)
	assert.Equal(t, "Go", loaded.Quiz.Topic)
	require.Len(t, loaded.Quiz.Questions, 1)
	assert.Equal(t, domain.QuestionMCQ, loaded.Quiz.Questions[0].Type())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_GetNotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db, sessionTTL)

	mock.ExpectGet(sessionKey("missing")).RedisNil()
	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_GetRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db, sessionTTL)

	redisErr := errors.New("connection refused")
	mock.ExpectGet(sessionKey("s1")).SetErr(redisErr)
	_, err := store.Get(context.Background(), "s1")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
	assert.ErrorIs(t, err, redisErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_GetCorruptPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db, sessionTTL)

	mock.ExpectGet(sessionKey("s1")).SetVal("{not json")
	_, err := store.Get(context.Background(), "s1")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db, sessionTTL)

	mock.ExpectDel(sessionKey("s1")).SetVal(1)
	assert.NoError(t, store.Delete(context.Background(), "s1"))

	mock.ExpectDel(sessionKey("gone")).SetVal(0)
	assert.NoError(t, store.Delete(context.Background(), "gone"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
