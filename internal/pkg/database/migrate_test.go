package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersions_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_b.sql":   {Data: []byte("select 2")},
		"m/001_a.sql":   {Data: []byte("select 1")},
		"m/README.md":   {Data: []byte("notes")},
		"m/sub/003.sql": {Data: []byte("select 3")},
	}

	files, err := MigrationVersions(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := MigrationVersions(migrationFiles, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}
