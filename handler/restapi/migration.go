package restapi

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/Matt-17/Dropblog/models"
	"github.com/Matt-17/Dropblog/service/migrationService"
)

// MigrationAPIHandler - serves the migration endpoint of the admin API
type MigrationAPIHandler struct {
	db            *sql.DB
	migrationsDir string
	logInfo       *log.Logger
	logError      *log.Logger
}

func NewMigrationAPIHandler(db *sql.DB, migrationsDir string, logInfo, logError *log.Logger) *MigrationAPIHandler {
	return &MigrationAPIHandler{
		db:            db,
		migrationsDir: migrationsDir,
		logInfo:       logInfo,
		logError:      logError,
	}
}

// UpdateHandler - applies pending migrations
// Safe to call repeatedly; a failing file aborts the run with a 500 naming it
func (api *MigrationAPIHandler) UpdateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applied, err := migrationService.Run(api.db, api.migrationsDir)
		if err != nil {
			api.logError.Printf("Migration run failed: %s", err)
			RespondWithError(w, http.StatusInternalServerError, "Migration failed: "+err.Error())
			return
		}

		if len(applied) == 0 {
			RespondWithJSON(w, http.StatusOK, models.MigrateResponse{
				Success: true,
				Message: "No new migrations to apply",
			})
			return
		}

		api.logInfo.Printf("Applied %d migrations: %v", len(applied), applied)
		RespondWithJSON(w, http.StatusOK, models.MigrateResponse{
			Success: true,
			Message: "Migrations applied successfully",
			Applied: applied,
		})
	})
}
