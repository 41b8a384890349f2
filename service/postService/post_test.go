package postService

import (
	"fmt"
	"testing"
	"time"

	"github.com/Matt-17/Dropblog/models"
	"github.com/stretchr/testify/assert"
)

func postAt(id int64, t time.Time) models.Post {
	return models.Post{ID: id, Content: fmt.Sprintf("post %d", id), Date: t, Type: "note"}
}

func TestGroupByDateKeepsOrderAndTotal(t *testing.T) {
	day1 := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, -1)

	// newest first, two days interleaved by time of day
	posts := []models.Post{
		postAt(5, day1.Add(18*time.Hour)),
		postAt(4, day1.Add(9*time.Hour)),
		postAt(3, day2.Add(22*time.Hour)),
		postAt(2, day2.Add(12*time.Hour)),
		postAt(1, day2.Add(8*time.Hour)),
	}

	groups := GroupByDate(posts)

	assert.Len(t, groups, 2)
	assert.Equal(t, day1, groups[0].Date)
	assert.Equal(t, day2, groups[1].Date)

	total := 0
	for _, group := range groups {
		total += len(group.Posts)
	}
	assert.Equal(t, len(posts), total)

	assert.Equal(t, []int64{5, 4}, postIDs(groups[0].Posts))
	assert.Equal(t, []int64{3, 2, 1}, postIDs(groups[1].Posts))
}

func TestGroupByDateEmptyInput(t *testing.T) {
	groups := GroupByDate(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByDateSinglePost(t *testing.T) {
	ts := time.Date(2026, time.March, 12, 14, 30, 0, 0, time.UTC)
	groups := GroupByDate([]models.Post{postAt(1, ts)})

	assert.Len(t, groups, 1)
	assert.Equal(t, time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC), groups[0].Date)
	assert.Len(t, groups[0].Posts, 1)
}

func postIDs(posts []models.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	return ids
}

func TestExtractKeywords(t *testing.T) {
	assert.Equal(t, []string{"alpha", "beta"}, ExtractKeywords("alpha beta"))
	assert.Equal(t, []string{"alpha", "beta"}, ExtractKeywords("  alpha\t beta \n"))
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("   \t  "))
}

func TestBuildSearchQueryConjunctive(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	stmt, args := buildSearchQuery([]string{"alpha", "beta"}, now)

	// one ILIKE clause per keyword, all ANDed
	assert.Contains(t, stmt, "p.content ilike '%' || $1 || '%'")
	assert.Contains(t, stmt, "and p.content ilike '%' || $2 || '%'")
	assert.Contains(t, stmt, "p.created_at <= $3")
	assert.Contains(t, stmt, fmt.Sprintf("limit %d", SearchResultsLimit+1))

	assert.Equal(t, []interface{}{"alpha", "beta", now}, args)
}

func TestBuildSearchQuerySingleKeyword(t *testing.T) {
	now := time.Now()
	stmt, args := buildSearchQuery([]string{"alpha"}, now)

	assert.NotContains(t, stmt, "$3")
	assert.Len(t, args, 2)
}
