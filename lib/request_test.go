package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeBody struct {
	Method string `json:"method" validate:"required,oneof=cash card pix"`
	Amount int    `json:"amount" validate:"gte=0"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestExtractAndValidateBody(t *testing.T) {
	got, err := ExtractAndValidateBody[closeBody](post(`{"method":"pix","amount":3}`))
	require.NoError(t, err)
	assert.Equal(t, "pix", got.Method)

	_, err = ExtractAndValidateBody[closeBody](post(`{"method":"pix","tip":1}`))
	assert.ErrorIs(t, err, ErrInvalidBody)

	_, err = ExtractAndValidateBody[closeBody](post(`{"method":`))
	assert.ErrorIs(t, err, ErrInvalidBody)

	_, err = ExtractAndValidateBody[closeBody](post(`{"method":"cheque","amount":-1}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []FieldError{
		{Field: "method", Message: "must be one of: cash card pix"},
		{Field: "amount", Message: "must be greater than or equal to 0"},
	}, verr.Errors)
}

func TestQueryDateRange(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 5, 2, 15, 30, 0, 0, loc)

	from, to, err := QueryDateRange(httptest.NewRequest(http.MethodGet, "/", nil), now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 5, 2, 23, 59, 59, 999999999, loc), to)

	from, to, err = QueryDateRange(httptest.NewRequest(http.MethodGet, "/?from=2026-05-01&to=2026-05-01", nil), now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, 24*time.Hour-time.Nanosecond, to.Sub(from))

	_, _, err = QueryDateRange(httptest.NewRequest(http.MethodGet, "/?from=2026-05-03&to=2026-05-01", nil), now, loc)
	assert.Error(t, err)

	_, _, err = QueryDateRange(httptest.NewRequest(http.MethodGet, "/?from=yesterday", nil), now, loc)
	assert.Error(t, err)
}
