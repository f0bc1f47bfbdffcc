package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm connects to MySQL. logLevel uses the service log level names
// (debug|info|warn|error); SQL statements are only traced at debug.
func OpenGorm(dsn, logLevel string) (*gorm.DB, error) {
	return open(mysql.Open(dsn), GormLogLevel(logLevel))
}

// OpenGormWithDialector is OpenGorm for a prepared dialector (tests, sqlite).
func OpenGormWithDialector(d gorm.Dialector) (*gorm.DB, error) {
	return open(d, logger.Warn)
}

func open(d gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(level),
		NowFunc:              func() time.Time { return time.Now().UTC() },
		DisableAutomaticPing: true,
		TranslateError:       true,
	}
	db, err := gorm.Open(d, cfg)
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("gorm ping: %w", err)
	}
	return db, nil
}

func GormLogLevel(levelStr string) logger.LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	}
	return logger.Warn
}
