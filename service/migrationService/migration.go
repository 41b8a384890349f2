// Package migrationService applies pending SQL migration files.
//
// Migrations are plain .sql files applied in ascending filename order. Applied
// filenames are recorded in the migrations table, so running the migration
// endpoint twice applies each file at most once.
package migrationService

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ensureTableStmt = `create table if not exists migrations (
	id serial primary key,
	filename text not null unique,
	applied_at timestamptz not null default now()
)`

// Pending - selects the not-yet-applied filenames in ascending order
func Pending(files []string, applied map[string]bool) []string {
	pending := make([]string, 0, len(files))
	for _, file := range files {
		if !applied[file] {
			pending = append(pending, file)
		}
	}
	sort.Strings(pending)
	return pending
}

func appliedFilenames(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("select filename from migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

func listMigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// Run - applies all pending migrations from dir and returns the filenames
// applied during this run
// The first failing file aborts the run; already applied files stay recorded,
// files after the failure are left for the next run
func Run(db *sql.DB, dir string) ([]string, error) {
	if _, err := db.Exec(ensureTableStmt); err != nil {
		return nil, err
	}

	files, err := listMigrationFiles(dir)
	if err != nil {
		return nil, err
	}

	applied, err := appliedFilenames(db)
	if err != nil {
		return nil, err
	}

	ran := []string{}
	for _, filename := range Pending(files, applied) {
		stmt, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return ran, fmt.Errorf("migration %s: %w", filename, err)
		}

		if _, err := db.Exec(string(stmt)); err != nil {
			return ran, fmt.Errorf("migration %s: %w", filename, err)
		}
		if _, err := db.Exec("insert into migrations (filename) values ($1)", filename); err != nil {
			return ran, fmt.Errorf("migration %s: %w", filename, err)
		}

		ran = append(ran, filename)
	}

	return ran, nil
}
