// Package i18n looks up user-visible strings. Column titles and headings are
// translated when a page builds them, so replacing the Translator and
// rebuilding is all a locale switch takes.
package i18n

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"

	"github.com/renato0307/k1console/internal/logging"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Translator resolves message keys for one locale. Params replace {0}, {1}, ...
type Translator interface {
	T(key string, params ...string) string
	Locale() string
}

// Bundle holds every supported locale.
type Bundle struct {
	universal *ut.UniversalTranslator
	locales   []string
}

// NewBundle registers the built-in catalogs.
func NewBundle() (*Bundle, error) {
	english := en.New()
	supported := []locales.Translator{english, de.New()}
	universal := ut.New(english, supported...)

	b := &Bundle{universal: universal}
	for _, loc := range supported {
		trans, _ := universal.GetTranslator(loc.Locale())
		catalog := catalogs[loc.Locale()]
		for key, text := range catalog {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("load %s catalog, key %q: %w", loc.Locale(), key, err)
			}
		}
		b.locales = append(b.locales, loc.Locale())
	}
	sort.Strings(b.locales)
	return b, nil
}

// Locales lists the supported locale names.
func (b *Bundle) Locales() []string {
	return append([]string(nil), b.locales...)
}

// Translator returns the translator for locale, falling back to English.
func (b *Bundle) Translator(locale string) Translator {
	trans, found := b.universal.GetTranslator(locale)
	if !found {
		logging.Debug("unknown locale, using fallback", "locale", locale)
	}
	return &translator{trans: trans, fallback: b.english()}
}

// Next returns the locale after current, wrapping around.
func (b *Bundle) Next(current string) string {
	for i, loc := range b.locales {
		if loc == current {
			return b.locales[(i+1)%len(b.locales)]
		}
	}
	return DefaultLocale
}

func (b *Bundle) english() ut.Translator {
	trans, _ := b.universal.GetTranslator(DefaultLocale)
	return trans
}

type translator struct {
	trans    ut.Translator
	fallback ut.Translator
}

func (t *translator) Locale() string {
	return t.trans.Locale()
}

// T translates key. Keys missing from the locale fall back to English, and
// keys missing everywhere are returned unchanged.
func (t *translator) T(key string, params ...string) string {
	if text, err := t.trans.T(key, params...); err == nil {
		return text
	}
	if text, err := t.fallback.T(key, params...); err == nil {
		return text
	}
	logging.Debug("missing translation", "locale", t.trans.Locale(), "key", key)
	return key
}

// Static is a Translator backed by a plain map, used in tests.
type Static map[string]string

func (s Static) T(key string, params ...string) string {
	text, ok := s[key]
	if !ok {
		return key
	}
	for i, p := range params {
		text = strings.ReplaceAll(text, "{"+strconv.Itoa(i)+"}", p)
	}
	return text
}

func (s Static) Locale() string {
	return "static"
}
