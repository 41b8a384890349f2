// Package localization resolves UI strings from JSON resource files.
//
// A bundle loads a fallback chain for its locale: strings.json, then
// strings.<language>.json, then strings.<locale>.json. Later files override
// earlier ones, so a regional file only needs the keys it actually changes.
// Nested JSON objects are flattened to dot keys ("months.january").
package localization

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLocale - locale used when none is configured
const DefaultLocale = "en-US"

// Bundle - translations of a single locale, fallback chain already applied
type Bundle struct {
	locale  string
	strings map[string]string
}

// NewBundle - loads the fallback chain of the given locale from dir
// Missing files are skipped; a locale with no files yields a bundle that
// echoes keys back, which keeps rendering alive on broken deployments
func NewBundle(dir, locale string) (*Bundle, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	merged := make(map[string]string)
	for _, filename := range fallbackChain(locale) {
		path := filepath.Join(dir, filename)
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		var nested map[string]interface{}
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, err
		}
		flatten(nested, "", merged)
	}

	return &Bundle{locale: locale, strings: merged}, nil
}

// Locale - returns the bundle's locale tag
func (b *Bundle) Locale() string {
	return b.locale
}

// T - resolves a key, substituting {param} placeholders from params
// Unknown keys are returned verbatim
func (b *Bundle) T(key string, params map[string]string) string {
	s, ok := b.strings[key]
	if !ok {
		s = key
	}
	for param, value := range params {
		s = strings.ReplaceAll(s, "{"+param+"}", value)
	}
	return s
}

// fallbackChain - resource filenames in override order for a locale
// e.g. "de-DE" -> [strings.json, strings.de.json, strings.de-DE.json]
func fallbackChain(locale string) []string {
	chain := []string{"strings.json"}
	if locale == "en-US" || locale == "en" {
		return chain
	}

	language := strings.SplitN(locale, "-", 2)[0]
	chain = append(chain, "strings."+language+".json")
	if language != locale {
		chain = append(chain, "strings."+locale+".json")
	}
	return chain
}

func flatten(nested map[string]interface{}, prefix string, out map[string]string) {
	for key, value := range nested {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]interface{}:
			flatten(v, fullKey, out)
		case string:
			out[fullKey] = v
		}
	}
}
