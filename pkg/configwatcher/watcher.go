package configwatcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"madrasa_backend/internal/config"
	"madrasa_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce absorbs editor write bursts (truncate + write + chmod) into one
// reload.
const debounce = time.Second

type ConfigReloader func(cfg interface{})

// WatchConfig blocks watching the config file and invokes reloader after
// each settled change. Reload failures keep the previous configuration.
func WatchConfig(configPath string, cfg interface{}, reloader ConfigReloader) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("Failed to create config watcher:", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		log.Fatal("Failed to resolve config path:", err)
	}
	if err := watcher.Add(absPath); err != nil {
		log.Fatal("Failed to watch config file:", err)
	}

	reload := func() {
		newCfg, err := config.LoadConfig(filepath.Dir(configPath))
		if err != nil {
			logger.Log.Error("Failed to reload config", zap.Error(err))
			return
		}
		reloader(newCfg)
	}

	var mu sync.Mutex
	var pending *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				mu.Lock()
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(debounce, reload)
				mu.Unlock()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
