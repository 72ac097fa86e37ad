package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/shelter-adoption-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "shelter",
		Password: "secret",
		Name:     "dogs",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5433 user=shelter password=secret dbname=dogs sslmode=disable", dsn)
}
