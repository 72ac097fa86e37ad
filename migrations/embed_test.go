package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedFSContainsInitialSchema(t *testing.T) {
	content, err := FS.ReadFile("001_initial_schema.sql")
	require.NoError(t, err)

	sql := string(content)
	require.True(t, strings.Contains(sql, "-- +goose Up"))
	require.True(t, strings.Contains(sql, "-- +goose Down"))
	require.Contains(t, sql, "UNIQUE (adopter_id, dog_id)")
	require.Contains(t, sql, "UNIQUE (adoption_request_id, week)")
}
