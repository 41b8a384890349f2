package migrationService

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- test"), 0644))
	}
}

func TestPendingSortsAscending(t *testing.T) {
	files := []string{"003_add_metadata.sql", "001_create_posts.sql", "002_create_post_types.sql"}

	pending := Pending(files, map[string]bool{})

	assert.Equal(t, []string{
		"001_create_posts.sql",
		"002_create_post_types.sql",
		"003_add_metadata.sql",
	}, pending)
}

func TestPendingSkipsApplied(t *testing.T) {
	files := []string{"001_create_posts.sql", "002_create_post_types.sql", "003_add_metadata.sql"}
	applied := map[string]bool{
		"001_create_posts.sql":      true,
		"002_create_post_types.sql": true,
	}

	pending := Pending(files, applied)

	assert.Equal(t, []string{"003_add_metadata.sql"}, pending)
}

func TestPendingIdempotentWhenAllApplied(t *testing.T) {
	files := []string{"001_create_posts.sql", "002_create_post_types.sql"}
	applied := map[string]bool{
		"001_create_posts.sql":      true,
		"002_create_post_types.sql": true,
	}

	assert.Empty(t, Pending(files, applied))
}

func TestPendingEmptyDirectory(t *testing.T) {
	assert.Empty(t, Pending(nil, map[string]bool{}))
}

func TestListMigrationFilesFiltersNonSQL(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "001_create_posts.sql", "notes.txt", "002_create_post_types.sql")

	files, err := listMigrationFiles(dir)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"001_create_posts.sql", "002_create_post_types.sql"}, files)
}
