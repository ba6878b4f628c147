// Package i18n provides localized user-facing messages for error codes.
//
// Error codes are duplicated here as strings to avoid an import cycle with
// the errors package.
package i18n

import (
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors errors.Code for catalog lookups.
type Code = string

// Catalog holds the user-facing messages for one locale.
type Catalog struct {
	locale   string
	tag      language.Tag
	messages map[Code]string
}

// Locale returns the catalog's BCP 47 locale identifier.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, interpolating metadata values into
// {{.Key}} placeholders. Unknown codes fall back to a generic message.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return "An unexpected error occurred"
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New("msg").Parse(msg)
	if err != nil {
		return msg
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, metadata); err != nil {
		return msg
	}
	return sb.String()
}

var catalogs = []*Catalog{enUSCatalog}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(catalogs))
	for i := range catalogs {
		catalogs[i].tag = language.MustParse(catalogs[i].locale)
		tags = append(tags, catalogs[i].tag)
	}
	return language.NewMatcher(tags)
}()

// GetCatalog returns the catalog best matching the requested locale,
// defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	if locale == "" {
		return enUSCatalog
	}
	_, index, _ := matcher.Match(language.Make(locale))
	if index < 0 || index >= len(catalogs) {
		return enUSCatalog
	}
	return catalogs[index]
}
