package types

import "errors"

// Config holds backend selection and the options that shape the phone book.
type Config struct {
	Backend        string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir        string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	PageSize       int    `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
	StrictBirthday bool   `json:"strict_birthday" yaml:"strict_birthday" mapstructure:"strict_birthday"`
	LogLevel       string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat      string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
	LogFile        string `json:"log_file" yaml:"log_file" mapstructure:"log_file"`
}

// Supported backend names.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// DefaultPageSize is the number of records per page in "show all".
const DefaultPageSize = 2

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrPageSizeInvalid = errors.New("page size must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSONL:  true,
	BackendSQLite: true,
	BackendBolt:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.PageSize <= 0 {
		return ErrPageSizeInvalid
	}
	return nil
}
