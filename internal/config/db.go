package config

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the postgres connection shared by every repository.
// TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	DB = db
	return nil
}
