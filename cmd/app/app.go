package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ringsizer/storefront/internal/api"
	"github.com/ringsizer/storefront/internal/config"
	"github.com/ringsizer/storefront/internal/db"
	"github.com/ringsizer/storefront/internal/logger"
	"github.com/ringsizer/storefront/internal/repository"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

const (
	configPath       = "./cmd/app/config.yml"
	shutdownTimeout  = 10 * time.Second
	defaultSQLiteDSN = "file:storefront.db"
)

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	config.Watch(configPath, func(level string) {
		if err := logger.SetLevel(level); err != nil {
			zap.L().Warn("ignoring log level change", zap.Error(err))
			return
		}
		zap.L().Info("log level changed", zap.String("level", level))
	})

	credDAO, closeDB, err := openCredentials(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize credential store -> %w", err)
	}
	defer closeDB()

	client := dao.NewClient(conf.Remote.BaseURL, conf.Remote.ConnectTimeout, conf.Remote.CallTimeout)
	s := api.NewServer(conf, client, repository.NewCredentialRepository(credDAO))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go s.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

// openCredentials picks the credential store. DATABASE_URL, when set, wins over the postgres section.
func openCredentials(conf *config.AppConfig) (repository.CredentialDAO, func(), error) {
	if conf.Credentials.Driver == config.DriverSQLite {
		dsn := conf.Credentials.DSN
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		sqlDB, err := db.OpenSQLite(dsn)
		if err != nil {
			return nil, nil, err
		}
		return dao.NewSQLiteCredentialDAO(sqlDB), func() { _ = sqlDB.Close() }, nil
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = conf.Credentials.DSN
	}

	var (
		gormDB *gorm.DB
		err    error
	)
	if dbURL != "" {
		gormDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		gormDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return dao.NewCredentialDAO(gormDB), closeDB, nil
}
