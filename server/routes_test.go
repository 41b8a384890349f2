package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Matt-17/Dropblog/handler/renderapi"
	"github.com/Matt-17/Dropblog/hashid"
	"github.com/Matt-17/Dropblog/localization"
	"github.com/Matt-17/Dropblog/logger"
	"github.com/Matt-17/Dropblog/models"
	"github.com/Matt-17/Dropblog/service/postTypeService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderHandler(t *testing.T) *renderapi.Handler {
	t.Helper()

	codec, err := hashid.NewCodec("routes-test")
	require.NoError(t, err)

	loc, err := localization.NewBundle(filepath.FromSlash("../resources/locales"), "en-US")
	require.NoError(t, err)

	typeCache := postTypeService.NewCache(func() ([]models.PostType, error) {
		return nil, nil
	})

	return renderapi.NewHandler(nil, codec, typeCache, loc, time.UTC,
		filepath.FromSlash("../front/layouts"), "Test Blog",
		logger.NewInfo("test"), logger.NewError("test"))
}

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestMoreSpecific(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"literal segment beats capture", "/post/{hash}", "/{year}/{month}", true},
		{"capture loses against literal", "/{year}/{month}", "/post/{hash}", false},
		{"literal tail beats capture tail", "/admin/post-types/stats", "/admin/post-types/{id}", true},
		{"capture beats catch-all", "/{page}", "/{rest:.*}", true},
		{"longer pattern wins the tie", "/admin/posts", "/admin", true},
		{"equal patterns are not more specific", "/search", "/search", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moreSpecific(tt.a, tt.b))
		})
	}
}

func TestSortRoutesOrderIndependence(t *testing.T) {
	// deliberately least specific first
	routes := []Route{
		{Method: "GET", Pattern: "/{year:[0-9]{4}}/{month:[0-9]{1,2}}", Handler: textHandler("month")},
		{Method: "GET", Pattern: "/admin/post-types/{id}", Handler: textHandler("type")},
		{Method: "GET", Pattern: "/admin/post-types/stats", Handler: textHandler("stats")},
		{Method: "GET", Pattern: "/post/{hash}", Handler: textHandler("post")},
	}

	sorted := sortRoutes(routes)

	var patterns []string
	for _, route := range sorted {
		patterns = append(patterns, route.Pattern)
	}
	assert.Equal(t, []string{
		"/admin/post-types/stats",
		"/admin/post-types/{id}",
		"/post/{hash}",
		"/{year:[0-9]{4}}/{month:[0-9]{1,2}}",
	}, patterns)

	// input table is left untouched
	assert.Equal(t, "/{year:[0-9]{4}}/{month:[0-9]{1,2}}", routes[0].Pattern)
}

func TestRouterDispatchPrecedence(t *testing.T) {
	routes := []Route{
		{Method: "GET", Pattern: "/{year:[0-9]{4}}/{month:[0-9]{1,2}}", Handler: textHandler("month")},
		{Method: "GET", Pattern: "/post/{hash}", Handler: textHandler("post")},
	}
	router := newRouter(routes, newTestRenderHandler(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/post/a9b3c8d1", nil))
	assert.Equal(t, "post", recorder.Body.String())

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/2024/05", nil))
	assert.Equal(t, "month", recorder.Body.String())
}

func TestRouterNotFoundRendersPageForGET(t *testing.T) {
	router := newRouter(nil, newTestRenderHandler(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.True(t, strings.Contains(recorder.Body.String(), "404"))
}

func TestRouterNotFoundAnswersJSONForNonGET(t *testing.T) {
	router := newRouter(nil, newTestRenderHandler(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "Not found", response.Message)
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	routes := []Route{
		{Method: "GET", Pattern: "/search", Handler: textHandler("search")},
	}
	router := newRouter(routes, newTestRenderHandler(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/search", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, http.StatusMethodNotAllowed, response.Code)
}
