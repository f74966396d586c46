package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MOCKER"

const (
	KeyRowCount     = "row-count"
	KeyType         = "type"
	KeyOutput       = "output"
	KeyWordLists    = "word-lists"
	KeySeed         = "seed"
	KeyLogLevel     = "log-level"
	KeyLenientTypes = "lenient-types"
	KeyConfigFile   = "config-file"
	KeyDriver       = "driver"
	KeyDSN          = "dsn"
	KeyMode         = "mode"
	KeyRunsDB       = "runs-db"
)

const (
	DefaultRowCount  = 1000
	DefaultType      = "tsql"
	DefaultOutput    = "."
	DefaultWordLists = "./sources"
	DefaultLogLevel  = "info"
	DefaultMode      = "create"
)

type Config struct {
	RowCount     int
	Type         string
	Output       string
	WordLists    string
	Seed         int64
	HasSeed      bool
	LogLevel     string
	LenientTypes bool
	Driver       string
	DSN          string
	Mode         string
	RunsDB       string
}

// RegisterFlags adds the generation flags shared by the generate and load
// commands.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.IntP(KeyRowCount, "c", DefaultRowCount, "number of rows generated per table")
	flags.String(KeyWordLists, DefaultWordLists, "directory holding first_names.txt and last_names.txt")
	flags.Int64(KeySeed, 0, "seed for reproducible output")
	flags.Bool(KeyLenientTypes, false, "warn instead of failing when a provider value does not fit its column type")
}

// RegisterGlobalFlags adds flags that apply to every command.
func RegisterGlobalFlags(flags *pflag.FlagSet) {
	flags.String(KeyConfigFile, "", "configuration file (yaml or toml)")
	flags.String(KeyLogLevel, DefaultLogLevel, "log level: debug, info, warn or error")
	flags.String(KeyRunsDB, "", "sqlite file recording run history (empty disables history)")
}

// Load resolves configuration with flag > environment > config file >
// default precedence. A .env file in the working directory is read into the
// environment first and never overrides variables that are already set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyRowCount, DefaultRowCount)
	v.SetDefault(KeyType, DefaultType)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyWordLists, DefaultWordLists)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyMode, DefaultMode)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading configuration file '%s': %w", path, err)
		}
	}

	return &Config{
		RowCount:     v.GetInt(KeyRowCount),
		Type:         v.GetString(KeyType),
		Output:       v.GetString(KeyOutput),
		WordLists:    v.GetString(KeyWordLists),
		Seed:         v.GetInt64(KeySeed),
		HasSeed:      v.IsSet(KeySeed),
		LogLevel:     v.GetString(KeyLogLevel),
		LenientTypes: v.GetBool(KeyLenientTypes),
		Driver:       v.GetString(KeyDriver),
		DSN:          v.GetString(KeyDSN),
		Mode:         v.GetString(KeyMode),
		RunsDB:       v.GetString(KeyRunsDB),
	}, nil
}

func (c *Config) Validate() error {
	if c.RowCount <= 0 {
		return fmt.Errorf("row count must be a positive integer, got %d", c.RowCount)
	}
	if c.Type == "" {
		return errors.New("output type must not be empty")
	}
	return nil
}
