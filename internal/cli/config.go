package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "PHONEBOOK"

	// Config keys.
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyPageSize       = "page_size"
	cfgKeyStrictBirthday = "strict_birthday"
	cfgKeyLogLevel       = "log_level"
	cfgKeyLogFormat      = "log_format"
	cfgKeyLogFile        = "log_file"
)

// loadConfig reads config.yaml from configDir with Viper, layered over
// PHONEBOOK_* environment variables and defaults. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendJSONL)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyPageSize, types.DefaultPageSize)
	v.SetDefault(cfgKeyStrictBirthday, false)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, "text")
	v.SetDefault(cfgKeyLogFile, "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfig combines flags, config.yaml, environment and defaults into
// a validated Config.
func resolveConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if cfg.DataDir, err = paths.ResolveDataDir(flags.dataDir, cfg.DataDir); err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("%w: %w", errUser, err)
	}
	return cfg, nil
}
