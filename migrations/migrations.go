package main

import (
	"candideit/config"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

//go:embed *.sql
var migrationFiles embed.FS

type migration struct {
	version int
	file    string
}

func main() {
	cfg := config.Env()
	db, err := sql.Open("postgres", config.DSN(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(cfg.DatabaseSchema)); err != nil {
		log.Fatal(err)
	}
	version, err := getMigrationVersion(db)
	if err != nil {
		log.Fatal(err)
	}
	pending, err := pendingMigrations(migrationFiles, version)
	if err != nil {
		log.Fatal(err)
	}
	if len(pending) == 0 {
		fmt.Printf("Already at version %d\n", version)
		return
	}
	for _, m := range pending {
		if err := migrateUp(db, m); err != nil {
			log.Fatal(err)
		}
	}
}

// pendingMigrations lists the files named <version>.sql above version, in
// order. Versions must be contiguous.
func pendingMigrations(files fs.FS, version int) ([]migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	all := make([]migration, 0, len(names))
	for _, name := range names {
		v, err := strconv.Atoi(strings.TrimSuffix(name, ".sql"))
		if err != nil {
			return nil, fmt.Errorf("migration %s is not named <version>.sql", name)
		}
		all = append(all, migration{version: v, file: name})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].version < all[j].version })
	pending := make([]migration, 0)
	for i, m := range all {
		if m.version != i+1 {
			return nil, fmt.Errorf("missing migration %d", i+1)
		}
		if m.version > version {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

func migrateUp(db *sql.DB, m migration) error {
	file, err := migrationFiles.ReadFile(m.file)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(string(file)); err != nil {
		return fmt.Errorf("error executing migration %d: %w", m.version, err)
	}
	if _, err := tx.Exec("UPDATE migrations SET version = $1", m.version); err != nil {
		return fmt.Errorf("error updating migration version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	fmt.Printf("Migrated to version %d\n", m.version)
	return nil
}

func getMigrationVersion(db *sql.DB) (version int, err error) {
	err = db.QueryRow("SELECT version FROM migrations").Scan(&version)
	if err != nil {
		if err := generateMigrationTable(db); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return version, nil
}

func generateMigrationTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INT PRIMARY KEY
		);
		INSERT INTO migrations (version) VALUES (0);
	`)
	return err
}
