package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrations_OrderAndTables(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.version)
	}

	tables := map[string]int{
		"mpa_ratings": 1,
		"genres":      1,
		"films":       2,
		"film_genres": 2,
		"users":       3,
		"friendships": 3,
		"film_likes":  3,
	}
	for table, version := range tables {
		m := migrations[version-1]
		assert.True(t, strings.Contains(m.up, "CREATE TABLE IF NOT EXISTS "+table+" ("),
			"%s should be created by migration %d", table, version)
	}
}
