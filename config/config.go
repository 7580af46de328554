// Package config loads the speech grammar settings together with the intents
// and entities defined in the configuration file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Grammar  GrammarConfig  `mapstructure:"grammar"`
	Language string         `mapstructure:"language"`
	Stemmer  string         `mapstructure:"stemmer"`
	Entities []EntityConfig `mapstructure:"entities"`
	Intents  []IntentConfig `mapstructure:"intents"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GrammarConfig holds the fixed rules of the recognizer grammar.
type GrammarConfig struct {
	Name     string   `mapstructure:"name"`
	Wakeup   []string `mapstructure:"wakeup"`
	Sleep    []string `mapstructure:"sleep"`
	Shutdown []string `mapstructure:"shutdown"`
}

// EntityConfig defines an entity in AGF.
type EntityConfig struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"` // integer, string, time
	Grammar string `mapstructure:"grammar"`
}

// IntentConfig defines an intent in AGF. Response is a text/template
// executed with the bound entities.
type IntentConfig struct {
	Name     string `mapstructure:"name"`
	Grammar  string `mapstructure:"grammar"`
	Response string `mapstructure:"response"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is empty, amy.yaml is searched for in ., ./configs, and /etc/amy.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("grammar.name", "amy")
	v.SetDefault("grammar.wakeup", []string{"amy wake up"})
	v.SetDefault("grammar.sleep", []string{"amy sleep"})
	v.SetDefault("grammar.shutdown", []string{"amy shutdown"})
	v.SetDefault("language", "en")
	v.SetDefault("stemmer", "identity")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("amy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/amy")
	}

	// AMY_LANGUAGE, AMY_STEMMER, AMY_LOGGING_LEVEL, etc.
	v.SetEnvPrefix("AMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Grammar.Name == "" {
		return fmt.Errorf("grammar.name must not be empty")
	}
	for i, e := range c.Entities {
		if e.Name == "" || e.Grammar == "" {
			return fmt.Errorf("entities[%v]: an entity needs a name and a grammar", i)
		}
	}
	for i, in := range c.Intents {
		if in.Name == "" || in.Grammar == "" {
			return fmt.Errorf("intents[%v]: an intent needs a name and a grammar", i)
		}
	}
	return nil
}

// SetupLogging configures the global slog logger to write to w and returns it.
func SetupLogging(cfg LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
