// Package i18n holds the label catalog and the supported languages. Labels never reach
// the encoded payloads.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no preference is stored and as the catalog fallback.
const DefaultLanguage = "de"

var ErrUnsupportedLanguage = errors.New("unsupported language")

type Language struct {
	Code  string
	Label string
	Flag  string
}

var Languages = []Language{
	{Code: "de", Label: "Deutsch", Flag: "🇩🇪"},
	{Code: "en", Label: "English", Flag: "🇬🇧"},
}

// Normalize lowercases code and checks that it is supported.
func Normalize(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range Languages {
		if l.Code == code {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}

// Catalog maps a label key to its text per language code.
type Catalog struct {
	strings map[string]map[string]string
}

// Load parses a YAML catalog of the form `key: {de: ..., en: ...}`.
func Load(data []byte) (*Catalog, error) {
	var entries map[string]map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for key, texts := range entries {
		if texts[DefaultLanguage] == "" {
			return nil, fmt.Errorf("catalog key %q has no %q text", key, DefaultLanguage)
		}
	}
	return &Catalog{strings: entries}, nil
}

//go:embed strings.yaml
var defaultCatalogYAML []byte

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := Load(defaultCatalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// T returns the text of key in lang, falling back to German and then to the key itself.
func (c *Catalog) T(lang, key string) string {
	texts, ok := c.strings[key]
	if !ok {
		return key
	}
	if s := texts[lang]; s != "" {
		return s
	}
	if s := texts[DefaultLanguage]; s != "" {
		return s
	}
	return key
}

// Has reports whether key exists in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.strings[key]
	return ok
}

// Strings returns every key resolved for lang.
func (c *Catalog) Strings(lang string) map[string]string {
	out := make(map[string]string, len(c.strings))
	for key := range c.strings {
		out[key] = c.T(lang, key)
	}
	return out
}

// Localizer is a catalog bound to one language.
type Localizer struct {
	catalog *Catalog
	lang    string
}

func (c *Catalog) For(lang string) Localizer {
	return Localizer{catalog: c, lang: lang}
}

func (l Localizer) T(key string) string {
	return l.catalog.T(l.lang, key)
}

// Lookup is T without the key fallback.
func (l Localizer) Lookup(key string) (string, bool) {
	if !l.catalog.Has(key) {
		return "", false
	}
	return l.catalog.T(l.lang, key), true
}

func (l Localizer) Lang() string {
	return l.lang
}
