package restapi

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Matt-17/Dropblog/hashid"
	"github.com/Matt-17/Dropblog/models"
	"github.com/Matt-17/Dropblog/service/postService"
	"github.com/Matt-17/Dropblog/service/postTypeService"
	"github.com/gorilla/mux"
)

// DefaultPostType - slug assigned when a creation request names no type
const DefaultPostType = "note"

// PostAPIHandler - serves admin post creation, update and deletion
type PostAPIHandler struct {
	db        *sql.DB
	codec     *hashid.Codec
	typeCache *postTypeService.Cache
	logInfo   *log.Logger
	logError  *log.Logger
}

func NewPostAPIHandler(db *sql.DB, codec *hashid.Codec, typeCache *postTypeService.Cache,
	logInfo, logError *log.Logger) *PostAPIHandler {
	return &PostAPIHandler{
		db:        db,
		codec:     codec,
		typeCache: typeCache,
		logInfo:   logInfo,
		logError:  logError,
	}
}

// resolvePostType - validates a requested type slug against the active types
// On an unknown slug it writes the 400 response itself and reports false
func (api *PostAPIHandler) resolvePostType(w http.ResponseWriter, slug string) (models.PostType, bool) {
	postType, err := postTypeService.GetBySlug(api.db, slug)
	if err == nil {
		return postType, true
	}
	if err != sql.ErrNoRows {
		api.logError.Printf("Error looking up post type %q: %s", slug, err)
		RespondWithError(w, http.StatusInternalServerError, "Failed to validate post type")
		return models.PostType{}, false
	}

	var validTypes []string
	if active, cacheErr := api.typeCache.Get(); cacheErr == nil {
		validTypes = postTypeService.ActiveSlugs(active)
	}

	RespondWithJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Success:      false,
		Message:      "Invalid post type",
		ProvidedType: slug,
		ValidTypes:   validTypes,
	})
	return models.PostType{}, false
}

// CreatePostHandler - serves post creation requests
func (api *PostAPIHandler) CreatePostHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request := models.CreatePostRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if request.Content == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing content")
			return
		}

		typeSlug := request.PostType
		if typeSlug == "" {
			typeSlug = DefaultPostType
		}

		postType, ok := api.resolvePostType(w, typeSlug)
		if !ok {
			return
		}

		post, err := postService.Save(api.db, &postService.SaveRequest{
			Content:  request.Content,
			PostType: postType.Slug,
			Metadata: request.Metadata,
		})
		if err != nil {
			api.logError.Printf("Error saving post in database: %s", err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to create post")
			return
		}

		hash, err := api.codec.Encode(post.ID)
		if err != nil {
			api.logError.Printf("Error encoding hash of post %d: %s", post.ID, err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to create post")
			return
		}

		api.logInfo.Printf("Post created. ID: %d, hash: %s, type: %s", post.ID, hash, postType.Slug)
		RespondWithJSON(w, http.StatusCreated, models.CreatePostResponse{
			Success:  true,
			Message:  "Post created successfully",
			PostID:   post.ID,
			PostHash: hash,
			PostURL:  "/post/" + hash,
			PostType: models.PostTypeInfo{
				Slug:     postType.Slug,
				Name:     postType.Name,
				IconPath: postTypeService.IconPath(&postType),
			},
		})
	})
}

// UpdatePostHandler - serves post update requests
// Fields absent from the request keep their current values
func (api *PostAPIHandler) UpdatePostHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash := mux.Vars(r)["hash"]
		id, ok := api.codec.Decode(hash)
		if !ok {
			RespondWithError(w, http.StatusBadRequest, "Invalid post hash")
			return
		}

		request := models.UpdatePostRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		current, err := postService.GetByID(api.db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				RespondWithError(w, http.StatusNotFound, "Post not found")
				return
			}
			api.logError.Printf("Error retrieving post %d: %s", id, err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to update post")
			return
		}

		content := current.Content
		if request.Content != nil {
			content = *request.Content
		}
		typeSlug := current.Type
		if request.PostType != nil {
			typeSlug = *request.PostType
		}
		metadata := current.Metadata
		if request.Metadata != nil {
			metadata = request.Metadata
		}

		postType, ok := api.resolvePostType(w, typeSlug)
		if !ok {
			return
		}

		if _, err := postService.Update(api.db, &postService.UpdateRequest{
			ID:       id,
			Content:  content,
			PostType: postType.Slug,
			Metadata: metadata,
		}); err != nil {
			api.logError.Printf("Error updating post %d: %s", id, err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to update post")
			return
		}

		api.logInfo.Printf("Post updated. ID: %d, hash: %s", id, hash)
		RespondWithJSON(w, http.StatusOK, models.UpdatePostResponse{
			Success:  true,
			Message:  "Post updated successfully",
			PostID:   id,
			PostHash: hash,
			PostType: models.PostTypeInfo{
				Slug:     postType.Slug,
				Name:     postType.Name,
				IconPath: postTypeService.IconPath(&postType),
			},
		})
	})
}

// DeletePostHandler - serves post deletion requests
// Deletion exists only on the admin surface; the routed site never links it
func (api *PostAPIHandler) DeletePostHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash := mux.Vars(r)["hash"]
		id, ok := api.codec.Decode(hash)
		if !ok {
			RespondWithError(w, http.StatusBadRequest, "Invalid post hash")
			return
		}

		exists, err := postService.ExistsByID(api.db, id)
		if err != nil {
			api.logError.Printf("Error checking post %d: %s", id, err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to delete post")
			return
		}
		if !exists {
			RespondWithError(w, http.StatusNotFound, "Post not found")
			return
		}

		if err := postService.DeleteByID(api.db, id); err != nil {
			api.logError.Printf("Error deleting post %d: %s", id, err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to delete post")
			return
		}

		api.logInfo.Printf("Post deleted. ID: %d, hash: %s", id, hash)
		RespondWithJSON(w, http.StatusOK, models.MessageResponse{
			Success: true,
			Message: "Post deleted successfully",
		})
	})
}
