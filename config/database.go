package config

import (
	model "candideit/repository"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DSN(cfg *Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
		cfg.DatabaseSchema,
	)
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(cfg.DatabaseSchema))
	if x.Error != nil {
		return nil, x.Error
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := model.RegisterMetrics(db); err != nil {
		return nil, err
	}
	return db, nil
}
