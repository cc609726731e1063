package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "unich"
	envPrefix  = "UNICH"

	credentialsPathKey = "credentials.path"
	proxiesPathKey     = "proxies.path"
	apiBaseURLKey      = "api.base_url"
	apiIPURLKey        = "api.ip_url"
	apiTimeoutKey      = "api.timeout"
	tickKey            = "schedule.tick"
	resyncDelayKey     = "schedule.resync_delay"
	logPathKey         = "log.path"
	logLevelKey        = "log.level"
	watchKey           = "watch"
)

type Config struct {
	CredentialsPath string
	ProxiesPath     string
	API             API
	Schedule        Schedule
	Log             Log
	Watch           bool
	// File is the config file actually read, empty when running on defaults.
	File string
}

type API struct {
	BaseURL string
	IPURL   string
	Timeout time.Duration
}

type Schedule struct {
	Tick        time.Duration
	ResyncDelay time.Duration
}

type Log struct {
	Path  string
	Level string
}

func Default() Config {
	return Config{
		CredentialsPath: "token.txt",
		ProxiesPath:     "proxy.txt",
		API: API{
			BaseURL: "https://api.unich.com/airdrop/user/v1",
			IPURL:   "https://api.ipify.org?format=json",
			Timeout: 30 * time.Second,
		},
		Schedule: Schedule{
			Tick:        time.Second,
			ResyncDelay: 10 * time.Second,
		},
		Log: Log{
			Path:  "unich.log",
			Level: "info",
		},
	}
}

// DefaultPath is where `config init` writes and where Load looks first.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}

	return filepath.Join(dir, configDir, configName+"."+configType), nil
}

// Load reads configuration from explicitPath, or from the user config
// directory and the working directory when explicitPath is empty. A missing
// file is fine; UNICH_* environment variables override file values.
func Load(cfg *viper.Viper, explicitPath string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	setDefaults(cfg)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if explicitPath != "" {
		cfg.SetConfigFile(explicitPath)
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.AddConfigPath(filepath.Join(dir, configDir))
		}
		cfg.AddConfigPath(".")
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("%w: read config file: %w", domain.ErrConfig, err)
		}
	}

	loaded := Config{
		CredentialsPath: cfg.GetString(credentialsPathKey),
		ProxiesPath:     cfg.GetString(proxiesPathKey),
		API: API{
			BaseURL: cfg.GetString(apiBaseURLKey),
			IPURL:   cfg.GetString(apiIPURLKey),
			Timeout: cfg.GetDuration(apiTimeoutKey),
		},
		Schedule: Schedule{
			Tick:        cfg.GetDuration(tickKey),
			ResyncDelay: cfg.GetDuration(resyncDelayKey),
		},
		Log: Log{
			Path:  cfg.GetString(logPathKey),
			Level: cfg.GetString(logLevelKey),
		},
		Watch: cfg.GetBool(watchKey),
		File:  cfg.ConfigFileUsed(),
	}

	if err := loaded.validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.CredentialsPath) == "" {
		return fmt.Errorf("%w: credentials.path is empty", domain.ErrConfig)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is empty", domain.ErrConfig)
	}
	if c.Schedule.Tick <= 0 {
		return fmt.Errorf("%w: schedule.tick must be positive", domain.ErrConfig)
	}
	if c.Schedule.ResyncDelay <= 0 {
		return fmt.Errorf("%w: schedule.resync_delay must be positive", domain.ErrConfig)
	}

	return nil
}

func setDefaults(cfg *viper.Viper) {
	def := Default()
	cfg.SetDefault(credentialsPathKey, def.CredentialsPath)
	cfg.SetDefault(proxiesPathKey, def.ProxiesPath)
	cfg.SetDefault(apiBaseURLKey, def.API.BaseURL)
	cfg.SetDefault(apiIPURLKey, def.API.IPURL)
	cfg.SetDefault(apiTimeoutKey, def.API.Timeout)
	cfg.SetDefault(tickKey, def.Schedule.Tick)
	cfg.SetDefault(resyncDelayKey, def.Schedule.ResyncDelay)
	cfg.SetDefault(logPathKey, def.Log.Path)
	cfg.SetDefault(logLevelKey, def.Log.Level)
	cfg.SetDefault(watchKey, def.Watch)
}
