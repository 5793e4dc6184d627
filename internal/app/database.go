package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/atelier-mireille/backend/config"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mysqlDSN builds the MySQL connection string. clientFoundRows makes the
// driver report matched rows instead of changed rows, so the affected-row
// checks on update mean "row exists" even for a no-op write.
func mysqlDSN(cfg config.DBConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		cfg.User, cfg.Passwd, cfg.Host, cfg.Port, cfg.Name)
}

// getDatabase opens the configured database and bounds the shared
// connection pool: checkout beyond MaxConn queues instead of growing.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(filepath.Join(workdir, "atelier.db"))
	default:
		dialector = mysql.Open(mysqlDSN(cfg))
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to obtain sql.DB: %v", err)
	}
	maxConn := cfg.MaxConn
	if maxConn <= 0 {
		maxConn = 50
	}
	idleConn := cfg.IdleConn
	if idleConn <= 0 {
		idleConn = 10
	}
	sqlDB.SetMaxOpenConns(maxConn)
	sqlDB.SetMaxIdleConns(idleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
