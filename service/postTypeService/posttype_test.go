package postTypeService

import (
	"errors"
	"strings"
	"testing"

	"github.com/Matt-17/Dropblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSlug(t *testing.T) {
	valid := []string{"note", "link", "photo", "my-type", "my_type", "ab", "a2", strings.Repeat("a", 50)}
	for _, slug := range valid {
		assert.True(t, IsValidSlug(slug), "slug %q", slug)
	}

	invalid := []string{"", "a", "Note", "with space", "ümlaut", "semi;colon", strings.Repeat("a", 51)}
	for _, slug := range invalid {
		assert.False(t, IsValidSlug(slug), "slug %q", slug)
	}
}

func TestIconPath(t *testing.T) {
	withIcon := models.PostType{Slug: "note", IconFilename: "icon-note.png"}
	assert.Equal(t, "/assets/images/post-types/icon-note.png", IconPath(&withIcon))

	withoutIcon := models.PostType{Slug: "note"}
	assert.Equal(t, "/assets/images/post-types/icon-default.png", IconPath(&withoutIcon))
}

func TestActiveSlugs(t *testing.T) {
	types := []models.PostType{{Slug: "note"}, {Slug: "link"}, {Slug: "photo"}}
	assert.Equal(t, []string{"note", "link", "photo"}, ActiveSlugs(types))
	assert.Empty(t, ActiveSlugs(nil))
}

func TestCacheLoadsOnce(t *testing.T) {
	loads := 0
	cache := NewCache(func() ([]models.PostType, error) {
		loads++
		return []models.PostType{{Slug: "note"}}, nil
	})

	first, err := cache.Get()
	require.NoError(t, err)
	second, err := cache.Get()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	loads := 0
	cache := NewCache(func() ([]models.PostType, error) {
		loads++
		return []models.PostType{{Slug: "note"}}, nil
	})

	_, err := cache.Get()
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestCacheDoesNotCacheLoadErrors(t *testing.T) {
	loadErr := errors.New("database gone")
	fail := true
	cache := NewCache(func() ([]models.PostType, error) {
		if fail {
			return nil, loadErr
		}
		return []models.PostType{{Slug: "note"}}, nil
	})

	_, err := cache.Get()
	assert.ErrorIs(t, err, loadErr)

	// loader recovered; the next Get must retry instead of pinning the error
	fail = false
	types, err := cache.Get()
	require.NoError(t, err)
	assert.Len(t, types, 1)
}
