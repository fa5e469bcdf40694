package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Planner  PlannerConfig  `mapstructure:"planner"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration. Tokens are issued by the
// identity provider in front of this service; this core only verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// PlannerConfig is the horizon-start policy for new plans. Before
// EarlyCutoffHour (in Timezone) the 7-day planning horizon starts today,
// after it tomorrow. This is product policy, kept out of the planner's
// assignment semantics.
type PlannerConfig struct {
	EarlyCutoffHour int    `mapstructure:"early_cutoff_hour"`
	Timezone        string `mapstructure:"timezone"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling, e.g. server.address -> SERVER_ADDRESS,
	// planner.early_cutoff_hour -> PLANNER_EARLY_CUTOFF_HOUR.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fitness_calendar")
	viper.SetDefault("planner.early_cutoff_hour", 6)
	viper.SetDefault("planner.timezone", "UTC")

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
