package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	envPrefix            = "GEOPITS_"
)

var (
	mu        sync.RWMutex
	listeners []func(Config)
)

// Load 加载配置：
// 1) cfgName 非空时直接使用（相对路径按当前目录解析）；
// 2) 否则从当前目录向上查找 configs/conf.yml。
// 找不到或解析失败直接 panic。
func Load(cfgName string) Config {
	path := cfgName
	if path == "" || !filepath.IsAbs(path) {
		curDir, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		if path == "" {
			path = findConfigUpward(curDir)
		} else {
			path = filepath.Join(curDir, path)
		}
	}

	c, err := load(path, true)
	if err != nil {
		panic(err)
	}
	return c
}

// OnChange 注册热更新回调：配置文件变更并解析成功后，按注册顺序调用。
// 只有 Load 打开的配置会被监听。
func OnChange(fn func(Config)) {
	if fn == nil {
		return
	}
	mu.Lock()
	listeners = append(listeners, fn)
	mu.Unlock()
}

func notify(c Config) {
	mu.RLock()
	fns := make([]func(Config), len(listeners))
	copy(fns, listeners)
	mu.RUnlock()
	for _, fn := range fns {
		fn(c)
	}
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + defaultConfigRelPath + " from: " + startDir)
		}
		dir = parent
	}
}
