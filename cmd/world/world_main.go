package main

import (
	"GeoPits/internal/shared/config"
	"GeoPits/internal/shared/logs"
	"GeoPits/internal/shared/security"
	"GeoPits/internal/shared/session"
	transporthttp "GeoPits/internal/shared/transport/http"
	"GeoPits/internal/shared/utils"
	"GeoPits/internal/world/actor"
	"GeoPits/internal/world/actors"
	"GeoPits/internal/world/app"
	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/entity/domain"
	"GeoPits/internal/world/interfaces"
	"GeoPits/modules/kit/logx"
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	flag.Parse()

	conf := config.Load(*cfgPath)
	if err := logs.Init("world", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("storage", conf.Storage), zap.Any("logic", conf.Logic))

	if os.Getenv("JWT_SECRET") == "" && conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", conf.JWTSecret)
	}
	if err := utils.ConfigureSnowflake(conf.Logic.SnowflakeNode); err != nil {
		logs.Fatal("configure snowflake failed", zap.Error(err))
	}

	repo, closeRepo, err := openRepository(context.Background(), conf)
	if err != nil {
		logs.Fatal("open storage failed", zap.String("driver", conf.Storage.Driver), zap.Error(err))
	}
	defer closeRepo()

	rt := actor.NewRuntime(repo, actors.Options{
		Settings:   settingsFrom(conf.Logic),
		FlushEvery: time.Duration(conf.Logic.FlushEveryMS) * time.Millisecond,
	}, time.Duration(conf.Logic.AskTimeoutMS)*time.Millisecond)

	config.OnChange(func(c config.Config) {
		applyHotConfig(c, rt)
	})

	baseLogger := logx.NewZapLogger(logs.Logger())
	sessMgr := session.NewSessMgr()
	service := app.NewGameService(rt, sessMgr, utils.NextSnowflakeID, security.Award)

	host := conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.HTTPServer.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	httpServer.Register(interfaces.New(service, sessMgr, baseLogger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("world server listening", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("world server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	// 先停 http 再停 actor，保证最后一批写请求也能落盘
	rt.Shutdown()
}

// applyHotConfig 只处理能在运行中生效的项：日志级别和 Ask 超时。
// 世界生成参数改了会让已有存档对不上，必须重启。
func applyHotConfig(c config.Config, rt *actor.Runtime) {
	if err := logs.SetLevel(c.Log.Level); err != nil {
		logs.Warn("hot reload: bad log level, keep current", zap.String("level", c.Log.Level))
	}
	rt.SetAskTimeout(time.Duration(c.Logic.AskTimeoutMS) * time.Millisecond)
	logs.Info("config reloaded", zap.String("log_level", c.Log.Level), zap.Int("ask_timeout_ms", c.Logic.AskTimeoutMS))
}

func settingsFrom(c config.LogicConfig) entity.Settings {
	return entity.Settings{
		TileWidth:        c.TileDegrees,
		VisibilityRadius: c.NeighborhoodSize,
		SpawnProbability: c.PitSpawnRate,
		Seed:             c.WorldSeed,
		Start:            domain.LatLng{Lat: c.StartLat, Lng: c.StartLng},
	}
}
