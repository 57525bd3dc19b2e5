// Package locale provides the message catalogs used to render user-facing
// validation messages. Translators are constructed once and passed explicitly
// into the components that need them; there is no package-level locale state.
package locale

import "fmt"

const (
	English             = "en"
	BrazilianPortuguese = "pt-BR"

	DefaultLocale = English
)

type Translator struct {
	locale   string
	catalog  map[string]string
	fallback map[string]string
}

// NewTranslator returns a translator for the given locale. Unknown locales
// fall back to English.
func NewTranslator(loc string) *Translator {
	catalog, ok := catalogs[loc]
	if !ok {
		loc = DefaultLocale
		catalog = catalogs[DefaultLocale]
	}
	return &Translator{
		locale:   loc,
		catalog:  catalog,
		fallback: catalogs[DefaultLocale],
	}
}

func (t *Translator) Locale() string {
	return t.locale
}

// T renders the message for key, applying args with fmt.Sprintf. Lookup order
// is the translator's catalog, then English, then the key itself.
func (t *Translator) T(key string, args ...any) string {
	tmpl, ok := t.catalog[key]
	if !ok {
		tmpl, ok = t.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Supported reports whether a catalog exists for the locale.
func Supported(loc string) bool {
	_, ok := catalogs[loc]
	return ok
}
