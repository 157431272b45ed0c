package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// JournalConfig holds decision journal settings.
type JournalConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	SqlitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./refitlogs")

	// A pinned material binds by default; hosts opt out explicitly.
	viper.SetDefault("extension.requireMaterialMatch", true)
	viper.SetDefault("extension.tutorialKey", "refit_reinstall_hint")

	viper.SetDefault("hooks.placement.enabled", true)
	viper.SetDefault("hooks.readout.enabled", true)
	viper.SetDefault("hooks.job.enabled", true)

	viper.SetDefault("journal.enabled", true)
	viper.SetDefault("journal.sqlitePath", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "refit")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "refit-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetConfigName("refit.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetJournalConfig returns the journal settings.
func GetJournalConfig() JournalConfig {
	return JournalConfig{
		Enabled:    viper.GetBool("journal.enabled"),
		SqlitePath: viper.GetString("journal.sqlitePath"),
	}
}

// HookEnabled reports whether the named hook ("placement", "readout",
// "job") is enabled.
func HookEnabled(name string) bool {
	return viper.GetBool("hooks." + name + ".enabled")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
