package database

import (
	"fmt"
	"time"

	"maitri-medico/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapio"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// NewGormLogger routes GORM's SQL logging through the global zap logger.
func NewGormLogger(level string) logger.Interface {
	w := &zapio.Writer{Log: zap.L().Named("gorm"), Level: zap.InfoLevel}
	return logger.New(
		printfWriter{w},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

type printfWriter struct {
	w *zapio.Writer
}

func (p printfWriter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func ConnectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			cfg.TimeZone,
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // pgbouncer / Supabase transaction mode
	}), &gorm.Config{
		Logger:      NewGormLogger(cfg.LogLevel),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	zap.S().Info("Database connection established")
	return db, nil
}
