package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the flashcards tool
type Config struct {
	Deck DeckConfig `mapstructure:"deck"`
	Quiz QuizConfig `mapstructure:"quiz"`
	Log  LogConfig  `mapstructure:"log"`
}

// DeckConfig holds the snapshot paths applied at startup and exit
type DeckConfig struct {
	Import string `mapstructure:"import"`
	Export string `mapstructure:"export"`
}

// QuizConfig holds quiz configuration
type QuizConfig struct {
	// Seed fixes the card draw order. Zero seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

const envPrefix = "FLASHCARDS"

var validate = validator.New()

// Load reads configuration from file, environment variables and bound flags
func Load() (*Config, error) {
	if viper.ConfigFileUsed() == "" {
		viper.SetConfigName("flashcards")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))
	config.Log.Format = strings.ToLower(strings.TrimSpace(config.Log.Format))

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("deck.import", "")
	viper.SetDefault("deck.export", "")

	viper.SetDefault("quiz.seed", 0)

	// Log defaults; warn keeps diagnostics out of the interactive prompt
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
}
