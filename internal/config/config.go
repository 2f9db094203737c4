package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env string `mapstructure:"env"`

	// Hosts are the probe targets, IP literals or hostnames.
	Hosts []string `mapstructure:"hosts"`

	// PingInterval is the pause between probe cycles, in seconds.
	PingInterval int `mapstructure:"ping_interval"`
	// PingTimeout is the per-packet reply timeout, in seconds.
	PingTimeout int `mapstructure:"ping_timeout"`
	// PingCount is the number of echo requests sent per host and cycle.
	PingCount int `mapstructure:"ping_count"`
	// PingPrivileged selects raw ICMP sockets; the default unprivileged
	// mode needs net.ipv4.ping_group_range to cover the process group.
	PingPrivileged bool `mapstructure:"ping_privileged"`

	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	// HealthPort is the port for the health/status API. Empty disables it.
	HealthPort string `mapstructure:"health_port"`
}

type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	File       string `mapstructure:"file"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads the configuration from path, or from ./config.{yaml,json,...}
// and ./config/config.{yaml,json,...} when path is empty. It never returns a
// nil Config: a missing file yields the defaults silently, and a malformed
// file yields the defaults together with the error that caused the fallback,
// so one bad edit cannot take the monitor down. Fields absent from the file
// are merged with their defaults individually.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Default(), fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.sanitize()
	return &cfg, nil
}

// Default returns the documented default configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Only defaults are registered, so unmarshalling cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("hosts", []string{"8.8.8.8", "1.1.1.1"})
	v.SetDefault("ping_interval", 60)
	v.SetDefault("ping_timeout", 2)
	v.SetDefault("ping_count", 2)
	v.SetDefault("ping_privileged", false)

	v.SetDefault("server.health_port", "")

	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.file", "ping_monitor.log")
	v.SetDefault("log.max_backups", 24)
	v.SetDefault("log.max_age_days", 730)
}

// sanitize replaces invalid values with their defaults, field by field, so a
// partially broken file degrades no further than the fields it broke.
func (c *Config) sanitize() {
	def := Default()

	if len(c.Hosts) == 0 {
		c.Hosts = def.Hosts
	}
	if c.PingInterval <= 0 {
		c.PingInterval = def.PingInterval
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = def.PingTimeout
	}
	if c.PingCount <= 0 {
		c.PingCount = def.PingCount
	}
	if c.Log.Dir == "" {
		c.Log.Dir = def.Log.Dir
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = def.Log.MaxBackups
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = def.Log.MaxAgeDays
	}
}

func (c *Config) GetInterval() time.Duration {
	return time.Duration(c.PingInterval) * time.Second
}

func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.PingTimeout) * time.Second
}
