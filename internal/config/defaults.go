package config

import "github.com/spf13/viper"

// EnvPrefix is the prefix of environment variables overriding configuration,
// e.g. BALLSW_COMPLETION_LANGUAGE.
const EnvPrefix = "BALLSW"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("completion.max_delegation_depth", 4)
	v.SetDefault("completion.strict_invariants", false)
	v.SetDefault("completion.catalog_path", "")
	v.SetDefault("completion.language", "en")

	v.SetDefault("pkgdata.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}
