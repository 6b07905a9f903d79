package database

import (
	"comandas_server/lib"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	EnableRetry  bool
	// Retryable overrides isRetryableError when set
	Retryable func(error) bool
}

// DefaultRetryConfig returns the retry behavior used by every query builder operation
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		EnableRetry:  true,
	}
}

// transientMessages are driver error texts that indicate a dropped or saturated connection
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"eof",
	"connection closed",
	"bad connection",
	"too many clients",
	"server is not accepting",
	"temporary failure",
}

// unsentMessages are driver error texts raised before a statement reached the server
var unsentMessages = []string{
	"connection refused",
	"no such host",
	"network is unreachable",
	"too many clients",
	"server is not accepting",
}

// isRetryableWrite is the policy for statements that must not run twice. It only accepts
// errors proving the server did not apply the statement: rejections it reported itself and
// failures to connect at all. A reset or timeout after sending is ambiguous and final.
func isRetryableWrite(err error) bool {
	if err == nil {
		return false
	}
	if code := lib.PgErrorCode(err); code != "" {
		switch {
		case code == "40001", code == "40P01", code == "57P03":
			return true
		case strings.HasPrefix(code, "53"):
			return true
		default:
			return false
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, msg := range unsentMessages {
		if strings.Contains(errMsg, msg) {
			return true
		}
	}
	return false
}

// isRetryableError reports whether err is worth another attempt
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, sql.ErrTxDone) {
		return false
	}

	if code := lib.PgErrorCode(err); code != "" {
		switch {
		case code == "40001", // serialization_failure
			code == "40P01", // deadlock_detected
			code == "57P03": // cannot_connect_now
			return true
		case strings.HasPrefix(code, "08"), // connection exceptions
			strings.HasPrefix(code, "53"): // insufficient resources
			return true
		default:
			// integrity violations (23), syntax and access (42) and everything else are final
			return false
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, msg := range transientMessages {
		if strings.Contains(errMsg, msg) {
			return true
		}
	}
	return false
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation func() error) error {
	if !config.EnableRetry || config.MaxAttempts <= 1 {
		return operation()
	}

	retryable := config.Retryable
	if retryable == nil {
		retryable = isRetryableError
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) || attempt >= config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * config.Multiplier)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}
	}

	return lastErr
}
