package i18n

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Language represents the target language for translation
type Language string

const (
	LanguageEN Language = "en"
	LanguageCN Language = "cn"
)

// ParseLanguage parses a language code such as "en" or "CN".
func ParseLanguage(s string) (Language, error) {
	switch lang := Language(strings.ToLower(strings.TrimSpace(s))); lang {
	case LanguageEN, LanguageCN:
		return lang, nil
	case "":
		return LanguageEN, nil
	}
	return "", errors.Newf("unsupported language %q", s)
}

// MessagePattern represents a compiled regex pattern with its Chinese translation template
type MessagePattern struct {
	Pattern     *regexp.Regexp
	Translation string
}

// Translator handles translation of completion details and syntax messages
type Translator struct {
	patterns []MessagePattern
}

// NewTranslator creates a new translator with pre-compiled regex patterns
func NewTranslator() *Translator {
	patterns := []MessagePattern{
		// 1. 候选项类别 (Candidate details)
		{
			Pattern:     regexp.MustCompile(`^Keyword$`),
			Translation: "关键字",
		},
		{
			Pattern:     regexp.MustCompile(`^Snippet$`),
			Translation: "代码片段",
		},
		{
			Pattern:     regexp.MustCompile(`^Type$`),
			Translation: "类型",
		},
		{
			Pattern:     regexp.MustCompile(`^Function$`),
			Translation: "函数",
		},
		{
			Pattern:     regexp.MustCompile(`^Package$`),
			Translation: "包",
		},
		{
			Pattern:     regexp.MustCompile(`^Organization$`),
			Translation: "组织",
		},
		{
			Pattern:     regexp.MustCompile(`^Annotation$`),
			Translation: "注解",
		},

		// 2. 带类型的符号 (Typed symbols)
		{
			Pattern:     regexp.MustCompile(`^Variable: (.+?)$`),
			Translation: "变量: $1",
		},
		{
			Pattern:     regexp.MustCompile(`^Constant: (.+?)$`),
			Translation: "常量: $1",
		},
		{
			Pattern:     regexp.MustCompile(`^Endpoint: (.+?)$`),
			Translation: "端点: $1",
		},
		{
			Pattern:     regexp.MustCompile(`^Variable$`),
			Translation: "变量",
		},
		{
			Pattern:     regexp.MustCompile(`^Constant$`),
			Translation: "常量",
		},
		{
			Pattern:     regexp.MustCompile(`^Endpoint$`),
			Translation: "端点",
		},

		// 3. 语法错误 (Syntax errors)
		{
			Pattern:     regexp.MustCompile(`^expected "(.+?)"$`),
			Translation: `应为 "$1"`,
		},
		{
			Pattern:     regexp.MustCompile(`^unexpected input$`),
			Translation: "意外的输入",
		},
		{
			Pattern:     regexp.MustCompile(`^parser panic: (.+?)$`),
			Translation: "解析器内部错误: $1",
		},
	}

	return &Translator{
		patterns: patterns,
	}
}

// Translate translates the given message to the target language
func (t *Translator) Translate(msg string, lang Language) string {
	// If language is English, return the original message
	if lang == LanguageEN {
		return msg
	}

	if lang == LanguageCN {
		return t.translateToChinese(msg)
	}

	// For unsupported languages, return the original message
	return msg
}

// translateToChinese attempts to translate an English message to Chinese
func (t *Translator) translateToChinese(msg string) string {
	cleanMsg := strings.TrimSpace(msg)
	for _, pattern := range t.patterns {
		if pattern.Pattern.MatchString(cleanMsg) {
			return pattern.Pattern.ReplaceAllString(cleanMsg, pattern.Translation)
		}
	}
	return msg
}

// GetSupportedLanguages returns a list of supported languages
func (t *Translator) GetSupportedLanguages() []Language {
	return []Language{LanguageEN, LanguageCN}
}

// Global translator instance
var defaultTranslator = NewTranslator()

// Translate is a convenience function that uses the default translator
func Translate(msg string, lang Language) string {
	return defaultTranslator.Translate(msg, lang)
}
