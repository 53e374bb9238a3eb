package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets timeout values be written as "5s" or "50ms" in the
// yaml file.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Pool       PoolConfig       `yaml:"pool"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type PoolConfig struct {
	InitialSize   int      `yaml:"initial_size"`
	MaxSize       int      `yaml:"max_size"`
	DialTimeout   Duration `yaml:"dial_timeout"`
	ReadTimeout   Duration `yaml:"read_timeout"`
	WriteTimeout  Duration `yaml:"write_timeout"`
	IdleTimeout   Duration `yaml:"idle_timeout"`
	RetryAttempts int      `yaml:"retry_attempts"`
	RetryDelay    Duration `yaml:"retry_delay"`
}

type CheckpointConfig struct {
	Path string `yaml:"path"`
}

// Addr joins host and port into a dialable address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &config, nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 6379},
		Pool: PoolConfig{
			InitialSize:   1,
			MaxSize:       8,
			DialTimeout:   Duration(5 * time.Second),
			ReadTimeout:   Duration(3 * time.Second),
			WriteTimeout:  Duration(3 * time.Second),
			IdleTimeout:   Duration(5 * time.Minute),
			RetryAttempts: 3,
			RetryDelay:    Duration(50 * time.Millisecond),
		},
		Checkpoint: CheckpointConfig{Path: "checkpoints.yaml"},
	}
}
