package postService

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Matt-17/Dropblog/dateutil"
	"github.com/Matt-17/Dropblog/models"
)

const (
	// postsSelectFields - all entity fields as exposed to the site, with the
	// type slug resolved through the post_types foreign key
	postsSelectFields = "p.id, p.content, p.created_at, pt.slug, p.metadata"
	postsFromClause   = "posts p inner join post_types pt on pt.id = p.post_type_id"

	// SearchResultsLimit - maximum search results ever returned to a caller
	SearchResultsLimit = 100

	// RecentDays - number of calendar days shown on the home page
	RecentDays = 7
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	var metadata sql.NullString
	if err := row.Scan(&post.ID, &post.Content, &post.Date, &post.Type, &metadata); err != nil {
		return post, err
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &post.Metadata); err != nil {
			return post, err
		}
	}
	return post, nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	defer rows.Close()

	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func encodeMetadata(metadata map[string]interface{}) (interface{}, error) {
	if metadata == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// GetRecent - retrieves posts created in [since, now], newest first
// The upper bound keeps scheduled posts off the site until their time arrives
func GetRecent(db *sql.DB, since, now time.Time) ([]models.Post, error) {
	rows, err := db.Query("select "+postsSelectFields+" from "+postsFromClause+
		" where p.created_at >= $1 and p.created_at <= $2 order by p.created_at desc",
		since, now)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// GetByMonth - retrieves all published posts of a calendar month, newest first
func GetByMonth(db *sql.DB, year, month int, now time.Time) ([]models.Post, error) {
	start, end := dateutil.MonthRange(year, month, now.Location())
	rows, err := db.Query("select "+postsSelectFields+" from "+postsFromClause+
		" where p.created_at >= $1 and p.created_at < $2 and p.created_at <= $3"+
		" order by p.created_at desc",
		start, end, now)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// GetPublishedByID - retrieves a single published post
// Scheduled posts yield sql.ErrNoRows until their creation time arrives
func GetPublishedByID(db *sql.DB, id int64, now time.Time) (models.Post, error) {
	row := db.QueryRow("select "+postsSelectFields+" from "+postsFromClause+
		" where p.id = $1 and p.created_at <= $2", id, now)
	return scanPost(row)
}

// GetByID - retrieves a post regardless of publication state (admin side)
func GetByID(db *sql.DB, id int64) (models.Post, error) {
	row := db.QueryRow("select "+postsSelectFields+" from "+postsFromClause+
		" where p.id = $1", id)
	return scanPost(row)
}

// ExtractKeywords - splits a query on whitespace and drops empty parts
func ExtractKeywords(query string) []string {
	return strings.Fields(query)
}

// buildSearchQuery - builds the conjunctive search statement: one ILIKE
// condition per keyword, capped one above the public limit so the caller can
// detect that more results exist
func buildSearchQuery(keywords []string, now time.Time) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("select " + postsSelectFields + " from " + postsFromClause + " where")

	args := make([]interface{}, 0, len(keywords)+1)
	for i, keyword := range keywords {
		if i > 0 {
			sb.WriteString(" and")
		}
		sb.WriteString(" p.content ilike '%' || $" + strconv.Itoa(i+1) + " || '%'")
		args = append(args, keyword)
	}
	sb.WriteString(" and p.created_at <= $" + strconv.Itoa(len(keywords)+1))
	args = append(args, now)
	sb.WriteString(" order by p.created_at desc limit " + strconv.Itoa(SearchResultsLimit+1))

	return sb.String(), args
}

// Search - retrieves published posts whose content contains every keyword of
// the query (case-insensitive). Returns at most SearchResultsLimit posts and
// a flag telling whether matches were cut off
// An empty or whitespace-only query short-circuits without touching the database
func Search(db *sql.DB, query string, now time.Time) ([]models.Post, bool, error) {
	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return nil, false, nil
	}

	stmt, args := buildSearchQuery(keywords, now)
	rows, err := db.Query(stmt, args...)
	if err != nil {
		return nil, false, err
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, false, err
	}

	if len(posts) > SearchResultsLimit {
		return posts[:SearchResultsLimit], true, nil
	}
	return posts, false, nil
}

// GroupByDate - buckets posts by their calendar day
// Group order follows the first occurrence of each day in the input and post
// order within a group matches the input, so a newest-first list stays
// newest-first throughout
func GroupByDate(posts []models.Post) []models.PostGroup {
	groups := make([]models.PostGroup, 0)
	index := make(map[string]int)

	for _, post := range posts {
		key := post.Date.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.PostGroup{Date: dateutil.StartOfDay(post.Date)})
		}
		groups[i].Posts = append(groups[i].Posts, post)
	}

	return groups
}

// Save - saves a new post
func Save(db *sql.DB, request *SaveRequest) (models.Post, error) {
	var post models.Post

	metadata, err := encodeMetadata(request.Metadata)
	if err != nil {
		return post, err
	}

	err = db.QueryRow("insert into posts (content, post_type_id, metadata, created_at, updated_at)"+
		" values ($1, (select id from post_types where slug = $2), $3, now(), now())"+
		" returning id, created_at",
		request.Content, request.PostType, metadata).
		Scan(&post.ID, &post.Date)
	if err != nil {
		return post, err
	}

	post.Content = request.Content
	post.Type = request.PostType
	post.Metadata = request.Metadata
	return post, nil
}

// Update - overwrites content, type and metadata of a post
// Creation time is immutable; only updated_at moves
func Update(db *sql.DB, request *UpdateRequest) (models.Post, error) {
	var post models.Post

	metadata, err := encodeMetadata(request.Metadata)
	if err != nil {
		return post, err
	}

	err = db.QueryRow("update posts set content = $1,"+
		" post_type_id = (select id from post_types where slug = $2),"+
		" metadata = $3, updated_at = now() where id = $4"+
		" returning id, created_at",
		request.Content, request.PostType, metadata, request.ID).
		Scan(&post.ID, &post.Date)
	if err != nil {
		return post, err
	}

	post.Content = request.Content
	post.Type = request.PostType
	post.Metadata = request.Metadata
	return post, nil
}

// ExistsByID - checks if a post with the given ID exists
func ExistsByID(db *sql.DB, id int64) (bool, error) {
	var exists bool
	err := db.QueryRow("select exists(select 1 from posts where id = $1)", id).Scan(&exists)
	return exists, err
}

// DeleteByID - deletes a post. Admin-only; the routed UI never exposes deletion
func DeleteByID(db *sql.DB, id int64) error {
	_, err := db.Exec("delete from posts where id = $1", id)
	return err
}
