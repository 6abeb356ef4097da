package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir   = ".orbsim"
	DefaultDt        = 0.1
	DefaultDuration  = 36.0
	DefaultWorkers   = 4
	DefaultChunkSize = 512
	DefaultFPS       = 30
	DefaultTheme     = "cyberpunk"
)

// EnvPrefix prefixes environment overrides, e.g. ORBSIM_SIM_DT.
const EnvPrefix = "ORBSIM"

type Config struct {
	DataDir string       `yaml:"data_dir" mapstructure:"data_dir"`
	Debug   bool         `yaml:"debug" mapstructure:"debug"`
	Loader  LoaderConfig `yaml:"loader" mapstructure:"loader"`
	Sim     SimConfig    `yaml:"sim" mapstructure:"sim"`
	Viz     VizConfig    `yaml:"viz" mapstructure:"viz"`
}

type LoaderConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`
}

type SimConfig struct {
	Dt       float64 `yaml:"dt" mapstructure:"dt"`
	Duration float64 `yaml:"duration" mapstructure:"duration"`
}

type VizConfig struct {
	FPS   int    `yaml:"fps" mapstructure:"fps"`
	Theme string `yaml:"theme" mapstructure:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Loader: LoaderConfig{
			Workers:   DefaultWorkers,
			ChunkSize: DefaultChunkSize,
		},
		Sim: SimConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
		Viz: VizConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
		},
	}
}

// Load reads the yaml file at path, if any, over the defaults and applies
// ORBSIM_* environment overrides. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("loader.workers", def.Loader.Workers)
	v.SetDefault("loader.chunk_size", def.Loader.ChunkSize)
	v.SetDefault("sim.dt", def.Sim.Dt)
	v.SetDefault("sim.duration", def.Sim.Duration)
	v.SetDefault("viz.fps", def.Viz.FPS)
	v.SetDefault("viz.theme", def.Viz.Theme)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("sim.dt must be positive, got %v", c.Sim.Dt)
	}
	if c.Sim.Duration <= 0 {
		return fmt.Errorf("sim.duration must be positive, got %v", c.Sim.Duration)
	}
	if c.Loader.Workers < 1 {
		return fmt.Errorf("loader.workers must be at least 1, got %d", c.Loader.Workers)
	}
	if c.Loader.ChunkSize < 1 {
		return fmt.Errorf("loader.chunk_size must be at least 1, got %d", c.Loader.ChunkSize)
	}
	if c.Viz.FPS < 1 {
		return fmt.Errorf("viz.fps must be at least 1, got %d", c.Viz.FPS)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Steps returns how many dt steps fit in the configured duration.
func (c *Config) Steps() int {
	return int(c.Sim.Duration/c.Sim.Dt + 0.5)
}
