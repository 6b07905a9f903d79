package database

import (
	"comandas_server/structs"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2, EnableRetry: true}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no rows", sql.ErrNoRows, false},
		{"deadline", context.DeadlineExceeded, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"connection exception", &pgconn.PgError{Code: "08006"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"reset by peer", errors.New("read tcp: connection reset by peer"), true},
		{"plain", errors.New("something else"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestIsRetryableWrite(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"connection exception", &pgconn.PgError{Code: "08006"}, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"refused", errors.New("dial tcp: connection refused"), true},
		{"reset by peer", errors.New("read tcp: connection reset by peer"), false},
		{"timeout", errors.New("read tcp: i/o timeout"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableWrite(tc.err))
		})
	}
}

func TestExecuteRunsOnceInsideTransaction(t *testing.T) {
	q := Query[struct{}](bun.Tx{})
	q.retry = fastRetry()

	calls := 0
	err := q.execute(context.Background(), true, func() error {
		calls++
		return &pgconn.PgError{Code: "40001"}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteWritePolicy(t *testing.T) {
	cases := []struct {
		name       string
		repeatable bool
		err        error
		wantCalls  int
	}{
		{"insert after reset", false, errors.New("connection reset by peer"), 1},
		{"insert after refused", false, errors.New("connection refused"), 3},
		{"insert after serialization failure", false, &pgconn.PgError{Code: "40001"}, 3},
		{"update after reset", true, errors.New("connection reset by peer"), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Query[struct{}]((*bun.DB)(nil))
			q.retry = fastRetry()

			calls := 0
			err := q.execute(context.Background(), tc.repeatable, func() error {
				calls++
				return tc.err
			})
			assert.Error(t, err)
			assert.Equal(t, tc.wantCalls, calls)
		})
	}
}

func TestRetryWithBackoffStopsOnFinalError(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(), func() error {
		calls++
		return &pgconn.PgError{Code: "23505"}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoffRecovers(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffGivesUp(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(), func() error {
		calls++
		return errors.New("broken pipe")
	})
	assert.EqualError(t, err, "broken pipe")
	assert.Equal(t, 3, calls)
}

func TestDSN(t *testing.T) {
	dsn := DSN(&structs.DatabaseConfig{User: "pos", Password: "secret", Host: "db", Port: 5433, Name: "comandas"})
	assert.Equal(t, "postgres://pos:secret@db:5433/comandas?sslmode=disable", dsn)
}
