package cmd

import (
	"GeoPits/internal/shared/config"
	"path/filepath"
	"testing"

	"GeoPits/internal/shared/logs"

	"go.uber.org/zap"
)

func TestReadConfig(t *testing.T) {
	conf := config.Load("")
	if conf.Storage.Driver == "" || conf.HTTPServer.Port == 0 {
		t.Fatalf("仓库里的 conf.yml 应该能完整加载: %+v", conf)
	}
	conf.Log.FileDir = filepath.Join(t.TempDir(), "test.log")
	if err := logs.Init("TestReadConfig", conf.Log); err != nil {
		t.Fatalf("init logs err=%v", err)
	}
	logs.Info("conf", zap.Any("conf", conf))
}
