// Package model keeps the reference warehouse connection and its read models.
package model

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"stdtick/pkg/config"
	"stdtick/pkg/xlog"
)

var (
	db     *gorm.DB
	logger = xlog.GetLogger()
)

func DBInit() {
	db = OpenMySQL()
}

// OpenMySQL connects to the wind warehouse configured in config.Shared.
func OpenMySQL() *gorm.DB {
	cfg := config.Shared.MySQL.Wind
	if cfg.Host == "" {
		logger.Fatalf("empty db host for wind")
	}

	logger.Infof("mysql(wind) connecting tcp(%s:%d)/%s", cfg.Host, cfg.Port, cfg.DB)

	url := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=Local",
		cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.DB,
	)

	logMode := gormLogger.Info
	if !config.Shared.IsDebug {
		logMode = gormLogger.Silent
	}
	newLogger := gormLogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	conn, err := gorm.Open(mysql.Open(url), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 newLogger,
	})
	if err != nil {
		logger.Fatalf("connect mysql failed #1, err:%s", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		logger.Fatalf("connect mysql failed #2, err:%s", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(10 * time.Hour)
	sqlDB.SetMaxIdleConns(20)

	logger.Infof("mysql(wind) connected tcp(%s:%d)/%s", cfg.Host, cfg.Port, cfg.DB)

	return conn
}

func GetMySQL() *gorm.DB {
	return db
}
