package localization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocaleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFallbackChain(t *testing.T) {
	assert.Equal(t, []string{"strings.json"}, fallbackChain("en-US"))
	assert.Equal(t, []string{"strings.json"}, fallbackChain("en"))
	assert.Equal(t,
		[]string{"strings.json", "strings.de.json", "strings.de-DE.json"},
		fallbackChain("de-DE"))
	assert.Equal(t,
		[]string{"strings.json", "strings.fr.json"},
		fallbackChain("fr"))
}

func TestRegionalOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	writeLocaleFile(t, dir, "strings.json",
		`{"common": {"home": "Home", "search": "Search"}}`)
	writeLocaleFile(t, dir, "strings.de.json",
		`{"common": {"home": "Startseite"}}`)

	bundle, err := NewBundle(dir, "de-DE")
	require.NoError(t, err)

	assert.Equal(t, "Startseite", bundle.T("common.home", nil))
	// untranslated keys fall back to the default file
	assert.Equal(t, "Search", bundle.T("common.search", nil))
}

func TestNestedKeysAreFlattened(t *testing.T) {
	dir := t.TempDir()
	writeLocaleFile(t, dir, "strings.json",
		`{"months": {"january": "January"}, "title": "Blog"}`)

	bundle, err := NewBundle(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "January", bundle.T("months.january", nil))
	assert.Equal(t, "Blog", bundle.T("title", nil))
	assert.Equal(t, DefaultLocale, bundle.Locale())
}

func TestParamSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeLocaleFile(t, dir, "strings.json",
		`{"search": {"no_results": "No posts found for: {query}"}}`)

	bundle, err := NewBundle(dir, "en-US")
	require.NoError(t, err)

	got := bundle.T("search.no_results", map[string]string{"query": "golang"})
	assert.Equal(t, "No posts found for: golang", got)
}

func TestUnknownKeyEchoesBack(t *testing.T) {
	bundle, err := NewBundle(t.TempDir(), "en-US")
	require.NoError(t, err)

	assert.Equal(t, "navigation.previous_month", bundle.T("navigation.previous_month", nil))
}
