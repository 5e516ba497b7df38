package types

import "errors"

// Config holds the persistence format and data directory used by the CLI.
type Config struct {
	Format  string `json:"format" yaml:"format"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported persistence formats.
const (
	FormatJSON   = "json"
	FormatJSONL  = "jsonl"
	FormatSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrFormatEmpty   = errors.New("format must not be empty")
	ErrFormatUnknown = errors.New("unknown format")
)

var knownFormats = map[string]bool{
	FormatJSON:   true,
	FormatJSONL:  true,
	FormatSQLite: true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Format == "" {
		return ErrFormatEmpty
	}
	if !knownFormats[c.Format] {
		return ErrFormatUnknown
	}
	return nil
}
