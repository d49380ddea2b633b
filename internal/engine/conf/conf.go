package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-quizhub/quizhub/pkg/cache"
	"github.com/go-quizhub/quizhub/pkg/database"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/log"
)

type AppConfig struct {
	Log       log.Conf
	Http      httpx.Http
	Database  database.Database
	Redis     cache.Redis
	Scheduler Scheduler
}

// Scheduler holds the cron specs of the background jobs.
type Scheduler struct {
	Enabled     bool
	DueScanSpec string // cron spec of the retake reminder scan
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads the TOML config and keeps re-reading it on change.
func LoadConfigFile(confFile string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confFile)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, re-reading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	if cfg.Scheduler.DueScanSpec == "" {
		cfg.Scheduler.DueScanSpec = "0 0 9 * * *" // daily, 09:00
	}

	return cfg, nil
}
