package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	files := fstest.MapFS{
		"2.sql":  {Data: []byte("SELECT 2;")},
		"10.sql": {Data: []byte("SELECT 10;")},
		"1.sql":  {Data: []byte("SELECT 1;")},
	}
	for i := 3; i < 10; i++ {
		files[string(rune('0'+i))+".sql"] = &fstest.MapFile{Data: []byte("SELECT;")}
	}

	pending, err := pendingMigrations(files, 0)
	require.NoError(t, err)
	require.Len(t, pending, 10)
	for i, m := range pending {
		assert.Equal(t, i+1, m.version)
	}

	pending, err = pendingMigrations(files, 9)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "10.sql", pending[0].file)

	pending, err = pendingMigrations(files, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingMigrationsGap(t *testing.T) {
	files := fstest.MapFS{
		"1.sql": {Data: []byte("SELECT 1;")},
		"3.sql": {Data: []byte("SELECT 3;")},
	}
	_, err := pendingMigrations(files, 0)
	assert.EqualError(t, err, "missing migration 2")
}

func TestPendingMigrationsBadName(t *testing.T) {
	files := fstest.MapFS{"init.sql": {Data: []byte("SELECT 1;")}}
	_, err := pendingMigrations(files, 0)
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	pending, err := pendingMigrations(migrationFiles, 0)
	require.NoError(t, err)
	require.NotEmpty(t, pending)
	schema, err := migrationFiles.ReadFile(pending[0].file)
	require.NoError(t, err)
	assert.Contains(t, string(schema), "CREATE TABLE IF NOT EXISTS candidate_answers")
}
