package postTypeService

import (
	"database/sql"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/Matt-17/Dropblog/models"
)

const (
	postTypesSelectFields = "id, slug, name, description, icon_filename, is_active, sort_order, created_at, updated_at"

	// iconBasePath - where post type icons live on the public site
	iconBasePath = "/assets/images/post-types/"
	defaultIcon  = "icon-default.png"
)

var (
	// ErrDuplicateSlug - a post type with the requested slug already exists
	ErrDuplicateSlug = errors.New("post type slug already exists")
	// ErrInUse - the post type is referenced by at least one post and cannot be deleted
	ErrInUse = errors.New("post type is referenced by posts")
)

// slug format: 2-50 lowercase alphanumerics, hyphens and underscores
var slugPattern = regexp.MustCompile(`^[a-z0-9_-]{2,50}$`)

// IsValidSlug - validates post type slug format
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// IconPath - public icon path of a post type, falling back to the default icon
func IconPath(pt *models.PostType) string {
	if pt.IconFilename != "" {
		return iconBasePath + pt.IconFilename
	}
	return iconBasePath + defaultIcon
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostType(row rowScanner) (models.PostType, error) {
	var pt models.PostType
	var description, icon sql.NullString
	err := row.Scan(&pt.ID, &pt.Slug, &pt.Name, &description, &icon,
		&pt.IsActive, &pt.SortOrder, &pt.CreatedAt, &pt.UpdatedAt)
	if err != nil {
		return pt, err
	}
	pt.Description = description.String
	pt.IconFilename = icon.String
	return pt, nil
}

func scanPostTypes(rows *sql.Rows) ([]models.PostType, error) {
	var types []models.PostType
	defer rows.Close()

	for rows.Next() {
		pt, err := scanPostType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

// GetAllActive - returns all active post types ordered for display
func GetAllActive(db *sql.DB) ([]models.PostType, error) {
	rows, err := db.Query("select " + postTypesSelectFields + " from post_types" +
		" where is_active order by sort_order asc, name asc")
	if err != nil {
		return nil, err
	}
	return scanPostTypes(rows)
}

// GetAll - returns every post type including inactive ones (admin side)
func GetAll(db *sql.DB) ([]models.PostType, error) {
	rows, err := db.Query("select " + postTypesSelectFields + " from post_types" +
		" order by sort_order asc, name asc")
	if err != nil {
		return nil, err
	}
	return scanPostTypes(rows)
}

// GetBySlug - returns the active post type with the given slug
func GetBySlug(db *sql.DB, slug string) (models.PostType, error) {
	row := db.QueryRow("select "+postTypesSelectFields+" from post_types"+
		" where slug = $1 and is_active", slug)
	return scanPostType(row)
}

// GetByID - returns the post type with the given ID regardless of active state
func GetByID(db *sql.DB, id int64) (models.PostType, error) {
	row := db.QueryRow("select "+postTypesSelectFields+" from post_types"+
		" where id = $1", id)
	return scanPostType(row)
}

// ActiveSlugs - slugs of all active post types, used in validation error messages
func ActiveSlugs(types []models.PostType) []string {
	slugs := make([]string, len(types))
	for i, pt := range types {
		slugs[i] = pt.Slug
	}
	return slugs
}

// Save - saves a new post type
// Returns ErrDuplicateSlug when the slug is already taken
func Save(db *sql.DB, request *models.CreatePostTypeRequest) (models.PostType, error) {
	var pt models.PostType

	var exists bool
	if err := db.QueryRow("select exists(select 1 from post_types where slug = $1)",
		request.Slug).Scan(&exists); err != nil {
		return pt, err
	}
	if exists {
		return pt, ErrDuplicateSlug
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}
	sortOrder := 0
	if request.SortOrder != nil {
		sortOrder = *request.SortOrder
	}

	row := db.QueryRow("insert into post_types"+
		" (slug, name, description, icon_filename, is_active, sort_order, created_at, updated_at)"+
		" values ($1, $2, $3, $4, $5, $6, now(), now())"+
		" returning "+postTypesSelectFields,
		request.Slug, request.Name, request.Description, request.IconFilename, isActive, sortOrder)
	return scanPostType(row)
}

// Update - updates the given fields of a post type, leaving nil fields untouched
// Returns sql.ErrNoRows for an unknown ID and ErrDuplicateSlug on slug conflicts
func Update(db *sql.DB, id int64, request *models.UpdatePostTypeRequest) (models.PostType, error) {
	var pt models.PostType

	if request.Slug != nil {
		var conflict bool
		err := db.QueryRow("select exists(select 1 from post_types where slug = $1 and id <> $2)",
			*request.Slug, id).Scan(&conflict)
		if err != nil {
			return pt, err
		}
		if conflict {
			return pt, ErrDuplicateSlug
		}
	}

	assignments := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	appendField := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, column+" = $"+strconv.Itoa(len(args)))
	}

	if request.Slug != nil {
		appendField("slug", *request.Slug)
	}
	if request.Name != nil {
		appendField("name", *request.Name)
	}
	if request.Description != nil {
		appendField("description", *request.Description)
	}
	if request.IconFilename != nil {
		appendField("icon_filename", *request.IconFilename)
	}
	if request.IsActive != nil {
		appendField("is_active", *request.IsActive)
	}
	if request.SortOrder != nil {
		appendField("sort_order", *request.SortOrder)
	}

	if len(assignments) == 0 {
		return GetByID(db, id)
	}

	assignments = append(assignments, "updated_at = now()")
	args = append(args, id)

	row := db.QueryRow("update post_types set "+strings.Join(assignments, ", ")+
		" where id = $"+strconv.Itoa(len(args))+
		" returning "+postTypesSelectFields, args...)
	return scanPostType(row)
}

// DeleteByID - deletes a post type
// Refuses with ErrInUse while any post references the type and returns
// sql.ErrNoRows for an unknown ID
func DeleteByID(db *sql.DB, id int64) error {
	if _, err := GetByID(db, id); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("select count(*) from posts where post_type_id = $1", id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	_, err := db.Exec("delete from post_types where id = $1", id)
	return err
}

// UsageStats - post counts per type, most used first
func UsageStats(db *sql.DB) ([]models.PostTypeUsage, error) {
	rows, err := db.Query("select pt.id, pt.slug, pt.name, count(p.id) as post_count" +
		" from post_types pt left join posts p on p.post_type_id = pt.id" +
		" group by pt.id, pt.slug, pt.name" +
		" order by post_count desc, pt.name asc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.PostTypeUsage
	for rows.Next() {
		var usage models.PostTypeUsage
		if err := rows.Scan(&usage.ID, &usage.Slug, &usage.Name, &usage.PostCount); err != nil {
			return nil, err
		}
		stats = append(stats, usage)
	}
	return stats, rows.Err()
}
