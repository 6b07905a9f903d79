package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "15s")
	assert.Equal(t, 15*time.Second, getEnvAsTimeDuration("TEST_TIMEOUT", time.Minute))

	t.Setenv("TEST_TIMEOUT", "30")
	assert.Equal(t, 30*time.Second, getEnvAsTimeDuration("TEST_TIMEOUT", time.Minute))

	t.Setenv("TEST_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("TEST_TIMEOUT", time.Minute))
}

func TestBlankValuesAreUnset(t *testing.T) {
	t.Setenv("TEST_NAME", "   ")
	assert.Equal(t, "fallback", getEnvAsString("TEST_NAME", "fallback"))

	t.Setenv("TEST_NAME", " comandas ")
	assert.Equal(t, "comandas", getEnvAsString("TEST_NAME", "fallback"))
}

func TestGetEnvAsIntAndBool(t *testing.T) {
	t.Setenv("TEST_MAX", "abc")
	assert.Equal(t, 100, getEnvAsInt("TEST_MAX", 100))
	t.Setenv("TEST_MAX", "40")
	assert.Equal(t, 40, getEnvAsInt("TEST_MAX", 100))

	t.Setenv("TEST_FLAG", "true")
	assert.True(t, getEnvAsBool("TEST_FLAG", false))
	t.Setenv("TEST_FLAG", "maybe")
	assert.False(t, getEnvAsBool("TEST_FLAG", false))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_ORIGINS", "http://a.local, ,http://b.local ")
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, getEnvAsSlice("TEST_ORIGINS", nil))
}
