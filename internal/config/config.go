package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	CPU  CPUConfig  `yaml:"cpu"`
	Disk DiskConfig `yaml:"disk"`
	GPU  GPUConfig  `yaml:"gpu"`
	Log  LogConfig  `yaml:"log"`
}

type CPUConfig struct {
	SampleInterval time.Duration `yaml:"sample_interval" validate:"gt=0"`
}

type DiskConfig struct {
	// Include pseudo and duplicate filesystems.
	AllPartitions bool `yaml:"all_partitions"`
	// Report only the first readable partition, as older releases did.
	FirstOnly bool `yaml:"first_only"`
}

type GPUConfig struct {
	Enabled       bool          `yaml:"enabled"`
	NvidiaSMI     string        `yaml:"nvidia_smi" validate:"required_if=Enabled true"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	SysfsFallback bool          `yaml:"sysfs_fallback"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

func Default() *Config {
	return &Config{
		CPU: CPUConfig{
			SampleInterval: time.Second,
		},
		GPU: GPUConfig{
			Enabled:       true,
			NvidiaSMI:     "nvidia-smi",
			Timeout:       5 * time.Second,
			SysfsFallback: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/hwinfo/config.yaml or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hwinfo", "config.yaml")
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set are kept.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HWINFO_CPU_SAMPLE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HWINFO_CPU_SAMPLE_INTERVAL: %w", err)
		}
		c.CPU.SampleInterval = d
	}
	if v := os.Getenv("HWINFO_DISK_ALL_PARTITIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HWINFO_DISK_ALL_PARTITIONS: %w", err)
		}
		c.Disk.AllPartitions = b
	}
	if v := os.Getenv("HWINFO_GPU_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HWINFO_GPU_ENABLED: %w", err)
		}
		c.GPU.Enabled = b
	}
	if v := os.Getenv("HWINFO_NVIDIA_SMI"); v != "" {
		c.GPU.NvidiaSMI = v
	}
	if v := os.Getenv("HWINFO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HWINFO_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", f.Namespace(), f.Tag(), f.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
