package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// ConnectDatabaseWithRetry blocks until the database is reachable or ctx is done.
// Call this from main() AFTER the HTTP server is listening.
func ConnectDatabaseWithRetry(ctx context.Context, s DatabaseSettings) (*gorm.DB, error) {
	network := "tcp"
	address := fmt.Sprintf("%s:%s", s.Host, s.Port)

	// Cloud SQL: DB_HOST=/cloudsql/<CONNECTION_NAME> means a unix socket.
	if strings.HasPrefix(s.Host, "/cloudsql/") {
		network = "unix"
		address = s.Host
	}

	databaseConfig := fmt.Sprintf("%s:%s@%s(%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		s.User,
		s.Password,
		network,
		address,
		s.Name,
	)

	var attempt int
	for {
		attempt++
		db, err := gorm.Open(mysql.Open(databaseConfig), initConfig())
		if err == nil {
			if sqlDB, derr := db.DB(); derr == nil && sqlDB != nil {
				if s.MaxOpenConns > 0 {
					sqlDB.SetMaxOpenConns(s.MaxOpenConns)
				}
				if s.MaxIdleConns >= 0 {
					sqlDB.SetMaxIdleConns(s.MaxIdleConns)
				}
				if s.ConnMaxLifetime > 0 {
					sqlDB.SetConnMaxLifetime(s.ConnMaxLifetime)
				}
				if s.ConnMaxIdleTime > 0 {
					sqlDB.SetConnMaxIdleTime(s.ConnMaxIdleTime)
				}
			}

			if pluginErr := db.Use(otelgorm.NewPlugin()); pluginErr != nil {
				log.Printf("db connected but failed to install otelgorm plugin: %v", pluginErr)
			}
			log.Printf("connected to database (attempt=%d)", attempt)
			return db, nil
		}

		sleep := backoff(attempt)
		log.Printf("failed to connect database (attempt=%d): %v; retrying in %s", attempt, err, sleep)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// 2s, 4s, ... capped at 30s
func backoff(attempt int) time.Duration {
	sleep := time.Second * time.Duration(1<<min(attempt, 5))
	if sleep > 30*time.Second {
		sleep = 30 * time.Second
	}
	return sleep
}

func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
	}
}

func initLog() logger.Interface {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
	return newLogger
}

func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}
