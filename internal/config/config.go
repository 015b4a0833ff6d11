package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
)

// Config holds all run settings, populated from environment variables.
// Command-line flags may override the file paths before Validate is called.
type Config struct {
	InputFilePath  string `validate:"required"`
	OutputFilePath string

	LogLevel      string `validate:"oneof=debug info warn error"`
	LogFormat     string `validate:"oneof=json text"`
	LogFile       string
	LogMaxSizeMB  int `validate:"gt=0"`
	LogMaxBackups int `validate:"gte=0"`

	MetricsFile string
}

// envNames maps Config fields to the environment variables that set them.
var envNames = map[string]string{
	"InputFilePath":  "INPUT_FILE_PATH",
	"OutputFilePath": "OUTPUT_FILE_PATH",
	"LogLevel":       "LOG_LEVEL",
	"LogFormat":      "LOG_FORMAT",
	"LogFile":        "LOG_FILE",
	"LogMaxSizeMB":   "LOG_MAX_SIZE_MB",
	"LogMaxBackups":  "LOG_MAX_BACKUPS",
	"MetricsFile":    "METRICS_FILE",
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where
// unset. The input path is not checked here because a flag may still supply it.
func Load() (*Config, error) {
	maxSize, err := parseInt("LOG_MAX_SIZE_MB", "10")
	if err != nil {
		return nil, err
	}
	maxBackups, err := parseInt("LOG_MAX_BACKUPS", "3")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputFilePath:  sharedcfg.EnvOrDefault("INPUT_FILE_PATH", ""),
		OutputFilePath: sharedcfg.EnvOrDefault("OUTPUT_FILE_PATH", ""),
		LogLevel:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
		LogFile:        sharedcfg.EnvOrDefault("LOG_FILE", ""),
		LogMaxSizeMB:   maxSize,
		LogMaxBackups:  maxBackups,
		MetricsFile:    sharedcfg.EnvOrDefault("METRICS_FILE", ""),
	}

	if err := explain(validate.StructExcept(cfg, "InputFilePath")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting, including the input path.
func (c *Config) Validate() error {
	return explain(validate.Struct(c))
}

func parseInt(key, def string) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

// explain turns a validator error into one naming the environment variable.
func explain(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := envNames[fe.StructField()]
	if fe.Tag() == "required" {
		return fmt.Errorf("%s is required", name)
	}
	return fmt.Errorf("invalid %s: %v", name, fe.Value())
}
