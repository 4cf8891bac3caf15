// Package config loads the buffer pool server's YAML configuration via
// viper, the way the rest of this codebase loads configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the root configuration document for the buffer pool server.
type Config struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Workdir string `mapstructure:"workdir"`
	} `mapstructure:"storage"`

	BufferPool struct {
		// NumInstances is the number of independent buffer pool shards
		// (the Parallel Buffer Pool's N). 1 disables sharding.
		NumInstances int `mapstructure:"num_instances"`
		// PoolSize is the number of frames per shard.
		PoolSize int `mapstructure:"pool_size"`
	} `mapstructure:"buffer_pool"`

	Server struct {
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"server"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{AppName: "novabase"}
	cfg.Storage.Workdir = "./data"
	cfg.BufferPool.NumInstances = 4
	cfg.BufferPool.PoolSize = 128
	return cfg
}

// Load reads a YAML config file at path and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
