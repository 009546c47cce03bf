package config

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults registers every configurable knob with its default value.
// Values can be overridden by the config file, MONT_* environment
// variables, or bound flags.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "~/.local/share/mont/mont.db")

	v.SetDefault("memory.max_sessions", 10)
	v.SetDefault("memory.max_messages", 50)
	v.SetDefault("memory.session_ttl", 35*time.Minute)
	v.SetDefault("memory.cleanup_interval", 5*time.Minute)
	v.SetDefault("memory.pressure_interval", 30*time.Second)
	v.SetDefault("memory.memory_limit_bytes", 10*1024*1024)

	v.SetDefault("notify.cooldown", 5*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
