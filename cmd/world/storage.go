package main

import (
	"GeoPits/internal/shared/config"
	shareddb "GeoPits/internal/shared/infrastructure/db"
	sharedmongo "GeoPits/internal/shared/infrastructure/mongo"
	sharedsqlite "GeoPits/internal/shared/infrastructure/sqlite"
	"GeoPits/internal/shared/logs"
	"GeoPits/internal/world/app/port"
	"GeoPits/internal/world/infra/persistence/file"
	"GeoPits/internal/world/infra/persistence/memory"
	worldmongo "GeoPits/internal/world/infra/persistence/mongodb"
	worldmysql "GeoPits/internal/world/infra/persistence/mysql"
	worldsqlite "GeoPits/internal/world/infra/persistence/sqlite"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// openRepository 按 storage.driver 打开 momento 仓储，返回的 close 负责释放连接。
func openRepository(ctx context.Context, conf config.Config) (port.GameRepository, func(), error) {
	noop := func() {}
	switch driver := strings.ToLower(conf.Storage.Driver); driver {
	case "", "file":
		repo, err := file.NewGameRepository(conf.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil

	case "memory":
		logs.Warn("memory storage: games are lost on restart")
		return memory.NewGameRepository(), noop, nil

	case "sqlite":
		db, err := sharedsqlite.Open(conf.SQLite, logs.Logger())
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logs.Warn("close sqlite failed", zap.Error(err))
			}
		}
		repo, err := worldsqlite.NewGameRepository(ctx, db)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		return repo, closeDB, nil

	case "mysql":
		db, err := shareddb.Open(conf.MySQL)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		repo, err := worldmysql.NewGameRepository(db)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		return repo, closeDB, nil

	case "mongodb":
		client, err := sharedmongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, noop, err
		}
		closeClient := func() {
			_ = client.Disconnect(context.Background())
		}
		return worldmongo.NewGameRepository(client.Database(conf.MongoDB.Database)), closeClient, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", driver)
	}
}
