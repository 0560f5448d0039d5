package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Builder    BuilderConfig    `mapstructure:"builder"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DictionaryConfig points the query service at its dump file.
type DictionaryConfig struct {
	DumpPath string `mapstructure:"dump_path"`
}

// BuilderConfig holds the batch builder's paths and tuning.
type BuilderConfig struct {
	InputPath        string `mapstructure:"input_path"`
	OutputPath       string `mapstructure:"output_path"`
	CompressionLevel int    `mapstructure:"compression_level"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("dictionary.dump_path", "./data/dict.bin")

	viper.SetDefault("builder.input_path", "./raw-wiktextract-data.jsonl")
	viper.SetDefault("builder.output_path", "./data/dict.bin")
	viper.SetDefault("builder.compression_level", 4)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}
