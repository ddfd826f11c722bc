package main

import (
	"candideit/repository"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

var (
	createTablePattern = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)
	createIndexPattern = regexp.MustCompile(`CREATE (UNIQUE )?INDEX IF NOT EXISTS (\w+) ON (\w+) \(([^)]*)\);`)
)

type sqlIndex struct {
	table   string
	unique  bool
	columns []string
}

// migratedSchema reads the tables and indexes the embedded migrations create.
func migratedSchema(t *testing.T) (map[string][]string, map[string]sqlIndex) {
	t.Helper()
	pending, err := pendingMigrations(migrationFiles, 0)
	require.NoError(t, err)
	var sql strings.Builder
	for _, m := range pending {
		b, err := migrationFiles.ReadFile(m.file)
		require.NoError(t, err)
		sql.Write(b)
		sql.WriteString("\n")
	}

	tables := map[string][]string{}
	for _, match := range createTablePattern.FindAllStringSubmatch(sql.String(), -1) {
		columns := make([]string, 0)
		for _, line := range strings.Split(match[2], "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			columns = append(columns, fields[0])
		}
		tables[match[1]] = columns
	}
	indexes := map[string]sqlIndex{}
	for _, match := range createIndexPattern.FindAllStringSubmatch(sql.String(), -1) {
		columns := strings.Split(match[4], ",")
		for i := range columns {
			columns[i] = strings.TrimSpace(columns[i])
		}
		indexes[match[2]] = sqlIndex{table: match[3], unique: match[1] != "", columns: columns}
	}
	return tables, indexes
}

func TestMigrationsMatchModels(t *testing.T) {
	tables, indexes := migratedSchema(t)
	require.Len(t, tables, len(repository.Models))

	modelIndexes := 0
	for _, model := range repository.Models {
		s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		columns, ok := tables[s.Table]
		if !assert.True(t, ok, "no table %s in migrations", s.Table) {
			continue
		}
		assert.ElementsMatch(t, s.DBNames, columns, s.Table)

		for _, index := range s.ParseIndexes() {
			modelIndexes++
			migrated, ok := indexes[index.Name]
			if !assert.True(t, ok, "no index %s in migrations", index.Name) {
				continue
			}
			fields := make([]string, 0, len(index.Fields))
			for _, field := range index.Fields {
				fields = append(fields, field.DBName)
			}
			assert.Equal(t, s.Table, migrated.table, index.Name)
			assert.Equal(t, index.Class == "UNIQUE", migrated.unique, index.Name)
			assert.Equal(t, fields, migrated.columns, index.Name)
		}
	}
	assert.Equal(t, modelIndexes, len(indexes))
}
