package restapi

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/Matt-17/Dropblog/models"
	"github.com/Matt-17/Dropblog/service/postTypeService"
	"github.com/gorilla/mux"
)

const invalidSlugMessage = "Invalid slug format. Use 2-50 lowercase letters, numbers, hyphens, and underscores only."

// PostTypeAPIHandler - serves admin post type management
type PostTypeAPIHandler struct {
	db        *sql.DB
	typeCache *postTypeService.Cache
	logInfo   *log.Logger
	logError  *log.Logger
}

func NewPostTypeAPIHandler(db *sql.DB, typeCache *postTypeService.Cache,
	logInfo, logError *log.Logger) *PostTypeAPIHandler {
	return &PostTypeAPIHandler{
		db:        db,
		typeCache: typeCache,
		logInfo:   logInfo,
		logError:  logError,
	}
}

// GetPostTypesHandler - lists post types
// Active types only unless include_inactive=true is passed
func (api *PostTypeAPIHandler) GetPostTypesHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var types []models.PostType
		var err error

		if r.URL.Query().Get("include_inactive") == "true" {
			types, err = postTypeService.GetAll(api.db)
		} else {
			types, err = api.typeCache.Get()
		}
		if err != nil {
			api.logError.Printf("Error retrieving post types: %s", err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve post types")
			return
		}

		RespondWithJSON(w, http.StatusOK, models.PostTypesResponse{
			Success:    true,
			PostTypes:  types,
			TotalCount: len(types),
		})
	})
}

// CreatePostTypeHandler - serves post type creation requests
func (api *PostTypeAPIHandler) CreatePostTypeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request := models.CreatePostTypeRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if request.Slug == "" || request.Name == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing required fields: slug and name are required")
			return
		}
		if !postTypeService.IsValidSlug(request.Slug) {
			RespondWithError(w, http.StatusBadRequest, invalidSlugMessage)
			return
		}

		postType, err := postTypeService.Save(api.db, &request)
		if err != nil {
			if err == postTypeService.ErrDuplicateSlug {
				RespondWithError(w, http.StatusConflict, "A post type with this slug already exists")
				return
			}
			api.logError.Printf("Error creating post type %q: %s", request.Slug, err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to create post type")
			return
		}

		api.typeCache.Invalidate()

		api.logInfo.Printf("Post type created. ID: %d, slug: %s", postType.ID, postType.Slug)
		RespondWithJSON(w, http.StatusCreated, models.PostTypeResponse{
			Success:  true,
			Message:  "Post type created successfully",
			PostType: postType,
			IconPath: postTypeService.IconPath(&postType),
		})
	})
}

// UpdatePostTypeHandler - serves post type update requests
func (api *PostTypeAPIHandler) UpdatePostTypeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid post type ID")
			return
		}

		request := models.UpdatePostTypeRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if request.Slug != nil && !postTypeService.IsValidSlug(*request.Slug) {
			RespondWithError(w, http.StatusBadRequest, invalidSlugMessage)
			return
		}

		postType, err := postTypeService.Update(api.db, id, &request)
		if err != nil {
			switch err {
			case sql.ErrNoRows:
				RespondWithError(w, http.StatusNotFound, "Post type not found")
			case postTypeService.ErrDuplicateSlug:
				RespondWithError(w, http.StatusConflict, "A post type with this slug already exists")
			default:
				api.logError.Printf("Error updating post type %d: %s", id, err)
				RespondWithError(w, http.StatusInternalServerError, "Failed to update post type")
			}
			return
		}

		api.typeCache.Invalidate()

		api.logInfo.Printf("Post type updated. ID: %d, slug: %s", postType.ID, postType.Slug)
		RespondWithJSON(w, http.StatusOK, models.PostTypeResponse{
			Success:  true,
			Message:  "Post type updated successfully",
			PostType: postType,
			IconPath: postTypeService.IconPath(&postType),
		})
	})
}

// DeletePostTypeHandler - serves post type deletion requests
// Deletion is refused while any post references the type
func (api *PostTypeAPIHandler) DeletePostTypeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid post type ID")
			return
		}

		if err := postTypeService.DeleteByID(api.db, id); err != nil {
			switch err {
			case sql.ErrNoRows:
				RespondWithError(w, http.StatusNotFound, "Post type not found")
			case postTypeService.ErrInUse:
				RespondWithError(w, http.StatusConflict, "Cannot delete post type: posts are using this type")
			default:
				api.logError.Printf("Error deleting post type %d: %s", id, err)
				RespondWithError(w, http.StatusInternalServerError, "Failed to delete post type")
			}
			return
		}

		api.typeCache.Invalidate()

		api.logInfo.Printf("Post type deleted. ID: %d", id)
		RespondWithJSON(w, http.StatusOK, models.MessageResponse{
			Success: true,
			Message: "Post type deleted successfully",
		})
	})
}

// GetPostTypeStatsHandler - serves post type usage statistics
func (api *PostTypeAPIHandler) GetPostTypeStatsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := postTypeService.UsageStats(api.db)
		if err != nil {
			api.logError.Printf("Error retrieving post type stats: %s", err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve post type stats")
			return
		}

		RespondWithJSON(w, http.StatusOK, models.PostTypeStatsResponse{
			Success:    true,
			Stats:      stats,
			TotalTypes: len(stats),
		})
	})
}
