package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/registers/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the config file inside the config directory.
	FileName = "config.yaml"

	keyFormat  = "format"
	keyDataDir = "data_dir"
	keyVerbose = "verbose"
)

// File is the structure written to config.yaml.
type File struct {
	Format  string `yaml:"format"`
	DataDir string `yaml:"data_dir,omitempty"`
	Verbose bool   `yaml:"verbose"`
}

// Settings are the merged CLI settings. DataDir holds the raw config.yaml
// value; paths.ResolveDataDir applies the rest of the precedence chain.
type Settings struct {
	types.Config
	Verbose bool
}

// Load reads config.yaml from configDir on top of the environment. A missing
// directory or file is not an error.
func Load(configDir string) (Settings, error) {
	envCfg, err := LoadEnv()
	if err != nil {
		return Settings{}, err
	}

	v := viper.New()
	v.SetDefault(keyFormat, envCfg.Format)
	v.SetDefault(keyVerbose, envCfg.Verbose)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Config: types.Config{
			Format:  v.GetString(keyFormat),
			DataDir: v.GetString(keyDataDir),
		},
		Verbose: v.GetBool(keyVerbose),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("format %q: %w", s.Format, err)
	}
	return s, nil
}

// WriteDefault creates configDir and writes config.yaml unless it already
// exists. It reports whether a file was written.
func WriteDefault(configDir string, cfg File) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if cfg.Format == "" {
		cfg.Format = types.FormatJSON
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
