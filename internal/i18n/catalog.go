// Package i18n loads the embedded message catalogs and exposes localizers
// backed by golang.org/x/text/message.
//
// Catalogs live under locales/<locale>/<namespace>.yaml. Every key must be
// prefixed with its namespace so keys stay unique across files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the product's interface language and the fallback for
	// keys missing in other locales.
	BaseLocale = "id-ID"
)

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages keyed by message key.
type Bundle struct {
	locales map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var (
	defaultBundle *Bundle
	defaultOnce   sync.Once
)

// Default returns the process-wide embedded bundle, registered with x/text.
// It panics if the embedded catalogs are malformed, which is a build defect.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := LoadFromFS(embeddedFS)
		if err != nil {
			panic(fmt.Sprintf("i18n: load embedded catalogs: %v", err))
		}
		if err := b.Register(); err != nil {
			panic(fmt.Sprintf("i18n: register catalogs: %v", err))
		}
		defaultBundle = b
	})
	return defaultBundle
}

// LoadFromFS loads catalog files from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := b.addFile(path, file); err != nil {
			return nil, err
		}
	}

	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) addFile(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale != filepath.Base(filepath.Dir(path)) {
		return fmt.Errorf("catalog %s: locale %q must match its directory", path, locale)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) {
		return fmt.Errorf("catalog %s: namespace %q must match its filename", path, namespace)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}

	messages, ok := b.locales[locale]
	if !ok {
		messages = map[string]string{}
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("catalog %s: key %q must start with %q", path, key, namespace+".")
		}
		if _, dup := messages[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		messages[key] = value
	}
	return nil
}

// Register installs every message into x/text's default catalog, under both
// the full tag and its base language. Keys missing from a locale fall back
// to the base locale's text.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, _ := tag.Base(); base.String() != "und" {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for key, text := range b.Messages(locale) {
			for _, t := range tags {
				if err := message.SetString(t, key, text); err != nil {
					return fmt.Errorf("register %q for %s: %w", key, t, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Messages returns the locale's messages merged over the base locale.
func (b *Bundle) Messages(locale string) map[string]string {
	out := make(map[string]string, len(b.locales[BaseLocale]))
	for k, v := range b.locales[BaseLocale] {
		out[k] = v
	}
	for k, v := range b.locales[strings.TrimSpace(locale)] {
		out[k] = v
	}
	return out
}

// Message returns one message with base-locale fallback.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if text, ok := b.locales[strings.TrimSpace(locale)][key]; ok {
		return text, true
	}
	text, ok := b.locales[BaseLocale][key]
	return text, ok
}
