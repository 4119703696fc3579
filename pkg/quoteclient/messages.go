package quoteclient

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	LangEnglish = "en"
	LangSpanish = "es"

	KeySent   = "quote.sent"
	KeyFailed = "quote.failed"
)

//go:embed locales/*.json
var localeFS embed.FS

// messages stores flattened keys: "en" -> "quote.sent" -> "..."
var messages = mustLoadLocales()

func mustLoadLocales() map[string]map[string]string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("failed to read embedded locales: %v", err))
	}

	out := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		content, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("failed to read locale %s: %v", entry.Name(), err))
		}
		var nested map[string]interface{}
		if err := json.Unmarshal(content, &nested); err != nil {
			panic(fmt.Sprintf("failed to unmarshal locale %s: %v", entry.Name(), err))
		}
		flat := make(map[string]string)
		flatten("", nested, flat)
		out[strings.TrimSuffix(entry.Name(), ".json")] = flat
	}
	return out
}

func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch child := v.(type) {
		case map[string]interface{}:
			flatten(key, child, result)
		default:
			result[key] = fmt.Sprintf("%v", child)
		}
	}
}

// Translate returns the message for key in lang, falling back to English
// and then to the key itself.
func Translate(lang, key string) string {
	if msg, ok := messages[NormalizeLang(lang)][key]; ok {
		return msg
	}
	if msg, ok := messages[LangEnglish][key]; ok {
		return msg
	}
	return key
}

// NormalizeLang maps a language tag such as "es-MX" onto a supported
// language, defaulting to English.
func NormalizeLang(lang string) string {
	base := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	if _, ok := messages[base]; ok {
		return base
	}
	return LangEnglish
}

// CoverageLabel is the localized display name of a coverage value.
func CoverageLabel(lang, coverage string) string {
	return Translate(lang, "coverage."+coverage)
}
