// Package config loads the language server configuration.
package config

// Config represents the language server configuration
type Config struct {
	Completion CompletionConfig `mapstructure:"completion"`
	Pkgdata    PkgdataConfig    `mapstructure:"pkgdata"`
	Log        LogConfig        `mapstructure:"log"`
}

// CompletionConfig configures the completion engine
type CompletionConfig struct {
	MaxDelegationDepth int    `mapstructure:"max_delegation_depth"` // resolver delegation bound
	StrictInvariants   bool   `mapstructure:"strict_invariants"`    // panic on internal invariant violations
	CatalogPath        string `mapstructure:"catalog_path"`         // empty = built-in catalog
	Language           string `mapstructure:"language"`             // en or cn
}

// PkgdataConfig configures the package descriptions
type PkgdataConfig struct {
	Path string `mapstructure:"path"` // extra packages, YAML; empty = built-in only
}

// LogConfig configures logging
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}
