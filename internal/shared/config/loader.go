package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadFile 读取指定文件并叠加环境变量；不开热更新，不改全局配置。
func LoadFile(configPath string) (Config, error) {
	return load(configPath, false)
}

func load(configPath string, watch bool) (Config, error) {
	if !fileExist(configPath) {
		return Config{}, fmt.Errorf("config file not exist, configPath=%v", configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := decode(v)
	if err != nil {
		return Config{}, err
	}

	if watch {
		v.OnConfigChange(func(e fsnotify.Event) {
			next, err := decode(v)
			if err != nil {
				log.Printf("配置热更新失败，保留旧配置: %v", err)
				return
			}
			log.Printf("配置文件变更: %s", e.Name)
			notify(next)
		})
		v.WatchConfig()
	}
	return c, nil
}

// decode 先解 yaml，再用 GEOPITS_* 环境变量覆盖。
func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("viper unmarshal config: %w", err)
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env overrides: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("httpserver.host", "0.0.0.0")
	v.SetDefault("httpserver.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "data/momento")
	v.SetDefault("sqlite.path", "data/geopits.db")
	v.SetDefault("mongodb.database", "geopits")
	v.SetDefault("logic.tile_degrees", 1e-4)
	v.SetDefault("logic.neighborhood_size", 8)
	v.SetDefault("logic.pit_spawn_rate", 0.1)
	v.SetDefault("logic.start_lat", 36.9995)
	v.SetDefault("logic.start_lng", -122.0533)
	v.SetDefault("logic.flush_every_ms", 3000)
	v.SetDefault("logic.ask_timeout_ms", 3000)
	v.SetDefault("logic.snowflake_node", 1)
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
