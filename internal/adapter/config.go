package adapter

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	m "github.com/mouse-blink/casecov/internal/model"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = ".casecov.toml"

// ErrInvalidConfig reports a configuration file that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of `.casecov.toml`. Command-line flags take
// precedence over every field.
type Config struct {
	Parallel      int      `toml:"parallel" validate:"gte=0,lte=256"`
	Reports       string   `toml:"reports"`
	FailOnMissing bool     `toml:"fail_on_missing"`
	Exclude       []string `toml:"exclude" validate:"dive,required,regexp"`
	// Ignore silences diagnostic codes for every member, "all" for everything.
	Ignore []string `toml:"ignore" validate:"dive,required"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{Parallel: 1, Reports: ".casecov-reports"}
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()

	_ = configValidate.RegisterValidation("regexp", validateRegexp)
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())

	return err == nil
}

// LoadConfig reads a TOML config file over the defaults. A missing default
// file is not an error; a missing explicit file is.
func LoadConfig(path m.Path, explicit bool) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(string(path)); errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(string(path), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalidConfig)
	}

	if err := configValidate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w: %w", path, ErrInvalidConfig, err)
	}

	return cfg, nil
}
