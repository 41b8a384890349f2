package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Matt-17/Dropblog/handler/renderapi"
	"github.com/Matt-17/Dropblog/handler/restapi"
	"github.com/gorilla/mux"
)

// Route - one entry of the dispatch table. API routes answer JSON on
// fallback errors, the rest render HTML pages.
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
	IsAPI   bool
}

// per-segment specificity weights, most specific first
const (
	segmentLiteral  = 3
	segmentCapture  = 2
	segmentCatchAll = 1
)

func segmentWeights(pattern string) []int {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return []int{segmentLiteral}
	}
	segments := strings.Split(trimmed, "/")
	weights := make([]int, 0, len(segments))
	for _, segment := range segments {
		switch {
		case strings.HasPrefix(segment, "{") && strings.Contains(segment, ":.*"):
			weights = append(weights, segmentCatchAll)
		case strings.HasPrefix(segment, "{"):
			weights = append(weights, segmentCapture)
		default:
			weights = append(weights, segmentLiteral)
		}
	}
	return weights
}

// moreSpecific - compares two patterns segment by segment. A literal segment
// beats a capture and a capture beats a catch-all; longer patterns win ties.
func moreSpecific(a, b string) bool {
	weightsA, weightsB := segmentWeights(a), segmentWeights(b)
	for i := 0; i < len(weightsA) && i < len(weightsB); i++ {
		if weightsA[i] != weightsB[i] {
			return weightsA[i] > weightsB[i]
		}
	}
	return len(weightsA) > len(weightsB)
}

// sortRoutes - stable-sorts the table most specific first so that matching
// never depends on the order the table was written down in
func sortRoutes(routes []Route) []Route {
	sorted := make([]Route, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return moreSpecific(sorted[i].Pattern, sorted[j].Pattern)
	})
	return sorted
}

// newRouter - registers the sorted table on a mux router and installs the
// fallback handlers: unmatched GETs get the rendered 404 page, everything
// else the JSON envelope
func newRouter(routes []Route, renderHandler *renderapi.Handler) *mux.Router {
	router := mux.NewRouter()
	for _, route := range sortRoutes(routes) {
		router.Handle(route.Pattern, route.Handler).Methods(route.Method)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			renderHandler.RenderNotFoundPage(w)
			return
		}
		restapi.RespondNotFound(w)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restapi.RespondMethodNotAllowed(w)
	})

	return router
}
