package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"data_dir,omitempty"`
	PageSize       int    `yaml:"page_size"`
	StrictBirthday bool   `yaml:"strict_birthday"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and data directory",
		Long:  "Write a default config.yaml if none exists, then create the data directory and an empty phone book.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	backend := flags.backend
	if backend == "" {
		backend = types.BackendJSONL
	}
	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, configFile{
		Backend:   backend,
		DataDir:   flags.dataDir,
		PageSize:  types.DefaultPageSize,
		LogLevel:  "warn",
		LogFormat: "text",
	}); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Opening and closing a session creates the data directory and the
	// backend's empty store.
	s, err := openSession(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := s.close(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Phonebook initialized successfully")
	fmt.Fprintln(out, "  config: ", configPath)
	fmt.Fprintln(out, "  data:   ", s.cfg.DataDir)
	fmt.Fprintln(out, "  backend:", s.cfg.Backend)
	return nil
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
