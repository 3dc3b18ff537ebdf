package config

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"

	"github.com/ballerina-platform/ballerinalsw/i18n"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Completion.MaxDelegationDepth <= 0 {
		return errors.Newf("completion.max_delegation_depth must be > 0, got %d", c.Completion.MaxDelegationDepth)
	}
	if _, err := i18n.ParseLanguage(c.Completion.Language); err != nil {
		return errors.WithHint(
			errors.Wrap(err, "completion.language"),
			"supported languages are en and cn",
		)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// Language returns the parsed completion language.
func (c *Config) Language() i18n.Language {
	lang, err := i18n.ParseLanguage(c.Completion.Language)
	if err != nil {
		return i18n.LanguageEN
	}
	return lang
}
