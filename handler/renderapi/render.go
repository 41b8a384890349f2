package renderapi

import (
	"database/sql"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Matt-17/Dropblog/dateutil"
	"github.com/Matt-17/Dropblog/hashid"
	"github.com/Matt-17/Dropblog/localization"
	"github.com/Matt-17/Dropblog/markdown"
	"github.com/Matt-17/Dropblog/models"
	"github.com/Matt-17/Dropblog/service/postService"
	"github.com/Matt-17/Dropblog/service/postTypeService"
	"github.com/gorilla/mux"
)

const timeFormat = "15:04"

// Handler - serves the public server-rendered pages
type Handler struct {
	db          *sql.DB
	codec       *hashid.Codec
	typeCache   *postTypeService.Cache
	loc         *localization.Bundle
	timezone    *time.Location
	layoutsPath string
	blogTitle   string
	logInfo     *log.Logger
	logError    *log.Logger
}

func NewHandler(db *sql.DB, codec *hashid.Codec, typeCache *postTypeService.Cache,
	loc *localization.Bundle, timezone *time.Location, layoutsPath, blogTitle string,
	logInfo, logError *log.Logger) *Handler {
	return &Handler{
		db:          db,
		codec:       codec,
		typeCache:   typeCache,
		loc:         loc,
		timezone:    timezone,
		layoutsPath: layoutsPath,
		blogTitle:   blogTitle,
		logInfo:     logInfo,
		logError:    logError,
	}
}

// MonthLink - one entry of the footer month navigation
type MonthLink struct {
	Year  int
	Month int
	Label string
	URL   string
}

// SiteNav - previous/current/next month navigation of the layout footer
// Next is hidden for months that have not started yet
type SiteNav struct {
	Prev     MonthLink
	Current  MonthLink
	Next     MonthLink
	ShowNext bool
	HomeURL  string
	Home     string
	Search   string
}

// Site - data of the shared layout wrapping every page
type Site struct {
	Title  string
	Locale string
	Nav    SiteNav
	Data   interface{}
}

// PostView - a single rendered post
type PostView struct {
	Hash     string
	URL      string
	HTML     template.HTML
	Time     string
	Date     time.Time
	TypeSlug string
	TypeName string
	IconPath string
}

// GroupView - posts of one calendar day
type GroupView struct {
	Heading string
	Posts   []PostView
}

// postListPageData - home, month archive and single post pages
type postListPageData struct {
	Groups       []GroupView
	EmptyMessage string
	MoreResults  bool
	MoreMessage  string
}

// searchPageData - the search page: a post list plus the echoed query
type searchPageData struct {
	postListPageData
	Query    string
	Keywords []string
}

// notFoundPageData - the 404 page
type notFoundPageData struct {
	Message string
}

func (h *Handler) now() time.Time {
	return time.Now().In(h.timezone)
}

func monthURL(year, month int) string {
	return fmt.Sprintf("/%04d/%02d", year, month)
}

func (h *Handler) buildNav(year, month int, now time.Time) SiteNav {
	names := dateutil.MonthNames(h.loc)
	prevYear, prevMonth := dateutil.PreviousMonth(year, month)
	nextYear, nextMonth := dateutil.NextMonth(year, month)

	return SiteNav{
		Prev: MonthLink{
			Year: prevYear, Month: prevMonth,
			Label: names[prevMonth],
			URL:   monthURL(prevYear, prevMonth),
		},
		Current: MonthLink{
			Year: year, Month: month,
			Label: fmt.Sprintf("%s %d", names[month], year),
			URL:   monthURL(year, month),
		},
		Next: MonthLink{
			Year: nextYear, Month: nextMonth,
			Label: names[nextMonth],
			URL:   monthURL(nextYear, nextMonth),
		},
		ShowNext: !dateutil.IsFutureMonth(nextYear, nextMonth, now),
		HomeURL:  "/",
		Home:     h.loc.T("common.home", nil),
		Search:   h.loc.T("common.search", nil),
	}
}

// activeTypesBySlug - display metadata lookup for rendered posts
// A cache failure only costs the type icons, not the page
func (h *Handler) activeTypesBySlug() map[string]models.PostType {
	bySlug := make(map[string]models.PostType)
	types, err := h.typeCache.Get()
	if err != nil {
		h.logError.Printf("Error loading post types for rendering: %s", err)
		return bySlug
	}
	for _, pt := range types {
		bySlug[pt.Slug] = pt
	}
	return bySlug
}

func (h *Handler) buildGroupViews(groups []models.PostGroup) []GroupView {
	bySlug := h.activeTypesBySlug()

	views := make([]GroupView, 0, len(groups))
	for _, group := range groups {
		view := GroupView{Heading: dateutil.FormatDate(group.Date.In(h.timezone), h.loc)}
		for _, post := range group.Posts {
			view.Posts = append(view.Posts, h.buildPostView(post, bySlug))
		}
		views = append(views, view)
	}
	return views
}

func (h *Handler) buildPostView(post models.Post, bySlug map[string]models.PostType) PostView {
	hash, err := h.codec.Encode(post.ID)
	if err != nil {
		h.logError.Printf("Error encoding hash of post %d: %s", post.ID, err)
	}

	view := PostView{
		Hash:     hash,
		URL:      "/post/" + hash,
		HTML:     markdown.ToHTML(post.Content),
		Time:     post.Date.In(h.timezone).Format(timeFormat),
		Date:     post.Date.In(h.timezone),
		TypeSlug: post.Type,
		TypeName: post.Type,
	}

	if pt, ok := bySlug[post.Type]; ok {
		view.TypeName = pt.Name
		view.IconPath = postTypeService.IconPath(&pt)
	} else {
		fallback := models.PostType{}
		view.IconPath = postTypeService.IconPath(&fallback)
	}
	return view
}

// render - parses the shared layout plus one page template and executes it
func (h *Handler) render(w http.ResponseWriter, status int, page string, site *Site) {
	tmpl, err := template.ParseFiles(
		filepath.Join(h.layoutsPath, "layout.html"),
		filepath.Join(h.layoutsPath, page))
	if err != nil {
		h.logError.Printf("Error parsing templates for page %s: %s", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", site); err != nil {
		h.logError.Printf("Error rendering page %s: %s", page, err)
	}
}

func (h *Handler) newSite(year, month int, now time.Time, data interface{}) *Site {
	return &Site{
		Title:  h.blogTitle,
		Locale: h.loc.Locale(),
		Nav:    h.buildNav(year, month, now),
		Data:   data,
	}
}

// RenderHomePageHandler - renders the last seven days of posts
func (h *Handler) RenderHomePageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := h.now()
		since := dateutil.StartOfDay(now.AddDate(0, 0, -(postService.RecentDays - 1)))

		posts, err := postService.GetRecent(h.db, since, now)
		if err != nil {
			h.logError.Printf("Error retrieving recent posts: %s", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		data := postListPageData{
			Groups:       h.buildGroupViews(postService.GroupByDate(posts)),
			EmptyMessage: h.loc.T("messages.no_posts", nil),
		}
		h.render(w, http.StatusOK, "posts.html", h.newSite(now.Year(), int(now.Month()), now, data))
	})
}

// RenderMonthPageHandler - renders the archive of one calendar month
func (h *Handler) RenderMonthPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		year, yearErr := strconv.Atoi(vars["year"])
		month, monthErr := strconv.Atoi(vars["month"])
		if yearErr != nil || monthErr != nil || month < 1 || month > 12 {
			h.RenderNotFoundPage(w)
			return
		}

		now := h.now()
		posts, err := postService.GetByMonth(h.db, year, month, now)
		if err != nil {
			h.logError.Printf("Error retrieving posts of %04d/%02d: %s", year, month, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		data := postListPageData{
			Groups:       h.buildGroupViews(postService.GroupByDate(posts)),
			EmptyMessage: h.loc.T("messages.no_posts_month", nil),
		}
		h.render(w, http.StatusOK, "posts.html", h.newSite(year, month, now, data))
	})
}

// RenderPostPageHandler - renders a single post addressed by its hash
// Unknown hashes and scheduled posts both end on the 404 page
func (h *Handler) RenderPostPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.codec.Decode(mux.Vars(r)["hash"])
		if !ok {
			h.RenderNotFoundPage(w)
			return
		}

		now := h.now()
		post, err := postService.GetPublishedByID(h.db, id, now)
		if err != nil {
			if err == sql.ErrNoRows {
				h.RenderNotFoundPage(w)
				return
			}
			h.logError.Printf("Error retrieving post %d: %s", id, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// a single post renders through the same group list as every other page
		data := postListPageData{
			Groups: h.buildGroupViews(postService.GroupByDate([]models.Post{post})),
		}
		h.render(w, http.StatusOK, "posts.html",
			h.newSite(post.Year(), post.Month(), now, data))
	})
}

// RenderSearchPageHandler - renders keyword search results
func (h *Handler) RenderSearchPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		keywords := postService.ExtractKeywords(query)
		now := h.now()

		data := searchPageData{
			Query:    query,
			Keywords: keywords,
		}

		if len(keywords) == 0 {
			data.EmptyMessage = h.loc.T("search.prompt", nil)
			h.render(w, http.StatusOK, "search.html", h.newSite(now.Year(), int(now.Month()), now, data))
			return
		}

		posts, more, err := postService.Search(h.db, query, now)
		if err != nil {
			h.logError.Printf("Error searching posts for %q: %s", query, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		data.Groups = h.buildGroupViews(postService.GroupByDate(posts))
		data.MoreResults = more
		data.MoreMessage = h.loc.T("search.more_results", nil)
		if len(posts) == 0 {
			data.EmptyMessage = h.loc.T("search.no_results", map[string]string{"query": query})
		}
		h.render(w, http.StatusOK, "search.html", h.newSite(now.Year(), int(now.Month()), now, data))
	})
}

// RenderNotFoundPage - writes the rendered 404 page
func (h *Handler) RenderNotFoundPage(w http.ResponseWriter) {
	now := h.now()
	data := notFoundPageData{Message: h.loc.T("messages.not_found", nil)}
	h.render(w, http.StatusNotFound, "404.html", h.newSite(now.Year(), int(now.Month()), now, data))
}

// RenderNotFoundPageHandler - handler form of the 404 page for route fallbacks
func (h *Handler) RenderNotFoundPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.RenderNotFoundPage(w)
	})
}
