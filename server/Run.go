package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Matt-17/Dropblog/handler/renderapi"
	"github.com/Matt-17/Dropblog/handler/restapi"
	"github.com/Matt-17/Dropblog/hashid"
	"github.com/Matt-17/Dropblog/localization"
	"github.com/Matt-17/Dropblog/logger"
	"github.com/Matt-17/Dropblog/models"
	"github.com/Matt-17/Dropblog/service/postTypeService"
	_ "github.com/lib/pq" // import postgres driver
	"github.com/spf13/viper"
)

var (
	logInfo  = logger.NewInfo("server")
	logError = logger.NewError("server")
)

// keys to access env variables
const (
	dbUserEnvKey        string = "db_user"
	dbPasswordEnvKey    string = "db_password"
	dbNameEnvKey        string = "db_name"
	dbHostEnvKey        string = "db_host"
	dbPortEnvKey        string = "db_port"
	serverPortEnvKey    string = "server_port"
	adminAPIKeyEnvKey   string = "admin_api_key"
	hashidsSaltEnvKey   string = "hashids_salt"
	blogTitleEnvKey     string = "blog_title"
	localeEnvKey        string = "locale"
	timezoneEnvKey      string = "timezone"
	migrationsDirEnvKey string = "migrations_dir"
	layoutsDirEnvKey    string = "layouts_dir"
	localesDirEnvKey    string = "locales_dir"
)

// Config - runtime configuration resolved from the environment
type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	ServerPort    string
	AdminAPIKey   string
	HashidsSalt   string
	BlogTitle     string
	Locale        string
	Timezone      string
	MigrationsDir string
	LayoutsDir    string
	LocalesDir    string
}

// LoadConfig - binds env variables and resolves the config with defaults
// for everything that is not deployment-specific
func LoadConfig() Config {
	_ = viper.BindEnv(dbUserEnvKey, "DB_USER")
	_ = viper.BindEnv(dbPasswordEnvKey, "DB_PASSWORD")
	_ = viper.BindEnv(dbNameEnvKey, "DB_NAME")
	_ = viper.BindEnv(dbHostEnvKey, "DB_HOST")
	_ = viper.BindEnv(dbPortEnvKey, "DB_PORT")
	_ = viper.BindEnv(serverPortEnvKey, "SERVER_PORT")
	_ = viper.BindEnv(adminAPIKeyEnvKey, "ADMIN_API_KEY")
	_ = viper.BindEnv(hashidsSaltEnvKey, "HASHIDS_SALT")
	_ = viper.BindEnv(blogTitleEnvKey, "BLOG_TITLE")
	_ = viper.BindEnv(localeEnvKey, "LOCALE")
	_ = viper.BindEnv(timezoneEnvKey, "TIMEZONE")
	_ = viper.BindEnv(migrationsDirEnvKey, "MIGRATIONS_DIR")
	_ = viper.BindEnv(layoutsDirEnvKey, "LAYOUTS_DIR")
	_ = viper.BindEnv(localesDirEnvKey, "LOCALES_DIR")

	viper.SetDefault(dbHostEnvKey, "localhost")
	viper.SetDefault(dbPortEnvKey, "5432")
	viper.SetDefault(serverPortEnvKey, "8080")
	viper.SetDefault(blogTitleEnvKey, "Dropblog")
	viper.SetDefault(localeEnvKey, localization.DefaultLocale)
	viper.SetDefault(timezoneEnvKey, "UTC")
	viper.SetDefault(migrationsDirEnvKey, filepath.FromSlash("migrations"))
	viper.SetDefault(layoutsDirEnvKey, filepath.FromSlash("front/layouts"))
	viper.SetDefault(localesDirEnvKey, filepath.FromSlash("resources/locales"))

	return Config{
		DBHost:        viper.GetString(dbHostEnvKey),
		DBPort:        viper.GetString(dbPortEnvKey),
		DBUser:        viper.GetString(dbUserEnvKey),
		DBPassword:    viper.GetString(dbPasswordEnvKey),
		DBName:        viper.GetString(dbNameEnvKey),
		ServerPort:    viper.GetString(serverPortEnvKey),
		AdminAPIKey:   viper.GetString(adminAPIKeyEnvKey),
		HashidsSalt:   viper.GetString(hashidsSaltEnvKey),
		BlogTitle:     viper.GetString(blogTitleEnvKey),
		Locale:        viper.GetString(localeEnvKey),
		Timezone:      viper.GetString(timezoneEnvKey),
		MigrationsDir: viper.GetString(migrationsDirEnvKey),
		LayoutsDir:    viper.GetString(layoutsDirEnvKey),
		LocalesDir:    viper.GetString(localesDirEnvKey),
	}
}

// buildRoutes - the full dispatch table. Admin routes are wrapped in the
// bearer auth middleware, public routes render pages.
func buildRoutes(cfg Config, db *sql.DB, codec *hashid.Codec, typeCache *postTypeService.Cache,
	loc *localization.Bundle, timezone *time.Location) ([]Route, *renderapi.Handler) {
	renderHandler := renderapi.NewHandler(db, codec, typeCache, loc, timezone,
		cfg.LayoutsDir, cfg.BlogTitle,
		logger.NewInfo("renderapi"), logger.NewError("renderapi"))
	postAPIHandler := restapi.NewPostAPIHandler(db, codec, typeCache,
		logger.NewInfo("restapi.post"), logger.NewError("restapi.post"))
	postTypeAPIHandler := restapi.NewPostTypeAPIHandler(db, typeCache,
		logger.NewInfo("restapi.posttype"), logger.NewError("restapi.posttype"))
	migrationAPIHandler := restapi.NewMigrationAPIHandler(db, cfg.MigrationsDir,
		logger.NewInfo("restapi.migration"), logger.NewError("restapi.migration"))

	authLog := logger.NewInfo("restapi.auth")
	admin := func(h http.Handler) http.Handler {
		return restapi.BearerAuth(cfg.AdminAPIKey, authLog, h)
	}

	routes := []Route{
		{Method: "GET", Pattern: "/", Handler: renderHandler.RenderHomePageHandler()},
		{Method: "GET", Pattern: "/search", Handler: renderHandler.RenderSearchPageHandler()},
		{Method: "GET", Pattern: "/post/{hash}", Handler: renderHandler.RenderPostPageHandler()},
		{Method: "GET", Pattern: "/{year:[0-9]{4}}/{month:[0-9]{1,2}}", Handler: renderHandler.RenderMonthPageHandler()},

		{Method: "POST", Pattern: "/admin/update", Handler: admin(migrationAPIHandler.UpdateHandler()), IsAPI: true},
		{Method: "POST", Pattern: "/admin/posts", Handler: admin(postAPIHandler.CreatePostHandler()), IsAPI: true},
		{Method: "PUT", Pattern: "/admin/posts/{hash}", Handler: admin(postAPIHandler.UpdatePostHandler()), IsAPI: true},
		{Method: "DELETE", Pattern: "/admin/posts/{hash}", Handler: admin(postAPIHandler.DeletePostHandler()), IsAPI: true},
		{Method: "GET", Pattern: "/admin/post-types", Handler: admin(postTypeAPIHandler.GetPostTypesHandler()), IsAPI: true},
		{Method: "POST", Pattern: "/admin/post-types", Handler: admin(postTypeAPIHandler.CreatePostTypeHandler()), IsAPI: true},
		{Method: "PUT", Pattern: "/admin/post-types/{id}", Handler: admin(postTypeAPIHandler.UpdatePostTypeHandler()), IsAPI: true},
		{Method: "DELETE", Pattern: "/admin/post-types/{id}", Handler: admin(postTypeAPIHandler.DeletePostTypeHandler()), IsAPI: true},
		{Method: "GET", Pattern: "/admin/post-types/stats", Handler: admin(postTypeAPIHandler.GetPostTypeStatsHandler()), IsAPI: true},
	}

	return routes, renderHandler
}

// we need to export this function to use in tests
func RunServer() {
	cfg := LoadConfig()

	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	logInfo.Printf("Opening database on host=%s, port=%s, user=%s, db name=%s...",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName)
	db, err := sql.Open("postgres", connString)
	if err != nil {
		logError.Fatalf("Error opening database: %s", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logError.Printf("Error closing database: %s", err)
		}
	}()
	// validate data source
	if err = db.Ping(); err != nil {
		logError.Fatalf("Invalid data source: %s", err)
	}
	logInfo.Print("Database successfully opened")

	codec, err := hashid.NewCodec(cfg.HashidsSalt)
	if err != nil {
		logError.Fatalf("Error creating hash id codec: %s", err)
	}

	loc, err := localization.NewBundle(cfg.LocalesDir, cfg.Locale)
	if err != nil {
		logError.Fatalf("Error loading locale files: %s", err)
	}

	timezone, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logError.Fatalf("Error loading timezone %q: %s", cfg.Timezone, err)
	}

	typeCache := postTypeService.NewCache(func() ([]models.PostType, error) {
		return postTypeService.GetAllActive(db)
	})

	routes, renderHandler := buildRoutes(cfg, db, codec, typeCache, loc, timezone)
	router := newRouter(routes, renderHandler)

	router.HandleFunc("/api/hc", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// serve post type icons and the rest of the static assets
	router.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.FromSlash("front/static")))))

	logInfo.Printf("Starting server on port %s", cfg.ServerPort)
	// omitting host will run server on all interfaces
	logError.Fatal(http.ListenAndServe(":"+cfg.ServerPort, accessLog(logger.NewInfo("access"), router)))
}
