package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	var c Config
	c.Server.Address = "0.0.0.0"
	c.Server.HTTPPort = "8080"
	c.Auth.Secret = "unit-test-secret"
	c.Auth.TokenTTL = 7 * 24 * time.Hour
	return &c
}

func TestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validate(validConfig()))

	c := validConfig()
	c.Auth.Secret = ""
	assert.Error(t, validate(c))

	// Дефолтная заглушка — это отсутствие ключа, а не ключ.
	c = validConfig()
	c.Auth.Secret = "CHANGE_ME"
	assert.Error(t, validate(c))

	c = validConfig()
	c.Auth.TokenTTL = 0
	assert.Error(t, validate(c))

	c = validConfig()
	c.Server.HTTPPort = ""
	assert.Error(t, validate(c))
}
