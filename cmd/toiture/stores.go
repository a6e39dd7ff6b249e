package main

import (
	"context"
	"fmt"

	"toiture-backend/internal/config"
	"toiture-backend/internal/draft"
	"toiture-backend/internal/service"
	"toiture-backend/internal/storage/firestore"
	"toiture-backend/internal/storage/mysql"
	"toiture-backend/internal/storage/redis"
	"toiture-backend/internal/storage/sqlite"
)

type remoteStore interface {
	service.SubmissionStorage
	submissionStore
	Close() error
}

type localStore interface {
	service.PriceStorage
	service.DraftStorage
	draft.Purger
	Close() error
}

func openRemote(ctx context.Context, cfg config.Remote) (remoteStore, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.New(cfg.MySQLDSN, cfg.Migrate)
	case "firestore":
		return firestore.New(ctx, cfg.FirebaseProject, cfg.FirebaseCredentials)
	}
	return nil, fmt.Errorf("unknown remote driver %q", cfg.Driver)
}

func openLocal(cfg config.Local) (localStore, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "redis":
		return redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return nil, fmt.Errorf("unknown local driver %q", cfg.Driver)
}
