package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil error", err: nil, want: NonRetryable},
		{name: "non-pg error", err: errors.New("connection reset by peer"), want: NonRetryable},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: Retryable},
		{name: "connection does not exist", err: &pgconn.PgError{Code: pgerrcode.ConnectionDoesNotExist}, want: Retryable},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: Retryable},
		{name: "deadlock detected", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: Retryable},
		{name: "cannot connect now", err: &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
		{name: "not null violation", err: &pgconn.PgError{Code: pgerrcode.NotNullViolation}, want: NonRetryable},
		{name: "undefined table", err: &pgconn.PgError{Code: pgerrcode.UndefinedTable}, want: NonRetryable},
		{name: "unknown code", err: &pgconn.PgError{Code: "P0001"}, want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

// TestPostgresErrorClassifier_WrappedError verifies that classification works
// through wrapping, as repository methods always wrap driver errors before
// logging them.
func TestPostgresErrorClassifier_WrappedError(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	wrapped := fmt.Errorf("%w: %w", ErrExecutingStatement, &pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	assert.Equal(t, Retryable, classifier.Classify(wrapped))
}

// TestDB_IsRetryable verifies the log-annotation helper repositories use on
// their error paths.
func TestDB_IsRetryable(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	assert.True(t, db.IsRetryable(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	assert.False(t, db.IsRetryable(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, db.IsRetryable(errors.New("plain error")))
	assert.False(t, db.IsRetryable(nil))
}
