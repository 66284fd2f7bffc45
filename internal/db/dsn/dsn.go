// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
)

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// Create builds the Data Source Name from the configuration for the configured engine.
func Create(dbCfg *config.Config) string {
	switch strings.ToLower(dbCfg.DB.GormEngine) {
	case EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			dbCfg.DB.Host,
			dbCfg.DB.Port,
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Name,
		)
		if dbCfg.DB.Extras != "" {
			out += " " + dbCfg.DB.Extras
		}

		return out
	case EngineSQLite:
		if dbCfg.DB.Extras == "" {
			return dbCfg.DB.Path
		}

		return dbCfg.DB.Path + "?" + dbCfg.DB.Extras
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Host,
			dbCfg.DB.Port,
			dbCfg.DB.Name,
			dbCfg.DB.Extras,
		)
	}
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(dbCfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(dbCfg.DB.GormEngine) {
	case EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case EnginePostgres:
		return postgres.Open(Create(dbCfg)), nil
	case EngineSQLite:
		return sqlite.Open(Create(dbCfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, dbCfg.DB.GormEngine)
	}
}
