package scheduler

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config controls the periodic tier recalculation loop.
type Config struct {
	Enabled     bool
	RunInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		RunInterval: 24 * time.Hour,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	return c
}

// ConfigHolder serves the current scheduler config and hot-reloads it when
// the config file changes on disk.
type ConfigHolder struct {
	current atomic.Value // holds Config
}

func NewConfigHolder() (*ConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("loyalty")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/loyalty")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LOYALTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultConfig()
		v.SetDefault("scheduler.enabled", defaults.Enabled)
		v.SetDefault("scheduler.runInterval", defaults.RunInterval)
	}

	var cfg Config
	if err := v.UnmarshalKey("scheduler", &cfg); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Config
		if err := v.UnmarshalKey("scheduler", &updated); err != nil {
			log.Printf("[scheduler-config] reload failed: %v", err)
			return
		}
		updated = updated.withDefaults()
		if err := validateConfig(updated); err != nil {
			log.Printf("[scheduler-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[scheduler-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ConfigHolder) Get() Config {
	return h.current.Load().(Config)
}

func validateConfig(cfg Config) error {
	if cfg.RunInterval < time.Minute {
		return errors.New("scheduler.runInterval must be at least one minute")
	}
	return nil
}
