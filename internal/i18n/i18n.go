// Package i18n localizes client-facing error details. Catalogs are TOML
// files embedded at build time, one per locale, negotiated against the
// request's Accept-Language header.
package i18n

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Catalog holds the translated message templates for one locale.
type Catalog struct {
	Exceptions struct {
		NotFound string `toml:"not_found"`
		Conflict string `toml:"conflict"`
	} `toml:"exceptions"`
	Entities map[string]string `toml:"entities"`
}

// NotFound renders the localized not-found detail for the named entity.
func (c *Catalog) NotFound(entity string) string {
	return fmt.Sprintf(c.Exceptions.NotFound, c.entity(entity))
}

// Conflict renders the localized conflict detail for the named entity.
func (c *Catalog) Conflict(entity string) string {
	return fmt.Sprintf(c.Exceptions.Conflict, c.entity(entity))
}

func (c *Catalog) entity(name string) string {
	if v, ok := c.Entities[name]; ok {
		return v
	}
	return name
}

// Bundle maps supported locale tags to their parsed catalogs.
type Bundle struct {
	defaultLocale string
	catalogs      map[string]*Catalog
}

// NewBundle parses the embedded catalog of every supported locale. The
// default locale must be among the supported ones.
func NewBundle(defaultLocale string, supported []string) (*Bundle, error) {
	b := &Bundle{defaultLocale: defaultLocale, catalogs: make(map[string]*Catalog)}
	for _, tag := range supported {
		raw, err := localeFS.ReadFile("locales/" + tag + ".toml")
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", tag, err)
		}
		var c Catalog
		if err := toml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("locale %q: %w", tag, err)
		}
		b.catalogs[tag] = &c
	}
	if _, ok := b.catalogs[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q not among supported locales", defaultLocale)
	}
	return b, nil
}

// Lookup walks the preference-ordered language tags and returns the catalog
// of the first supported one. Matching is exact, since requests normally
// declare both the bare and country-specific tags, e.g. "en, en-US". When
// nothing matches the default locale's catalog is returned.
func (b *Bundle) Lookup(languages []string) *Catalog {
	for _, lang := range languages {
		if c, ok := b.catalogs[lang]; ok {
			return c
		}
	}
	return b.catalogs[b.defaultLocale]
}

var langPattern = regexp.MustCompile(`(?i)([a-z]{2,3}(?:-\w+)?)(?:;q=(\d+\.?\d*))?`)

// ParseAcceptLanguage extracts language tags from an Accept-Language header
// and orders them by descending q-weight. Tags without an explicit weight
// default to 1, and ties keep the declared order.
func ParseAcceptLanguage(header string) []string {
	matches := langPattern.FindAllStringSubmatch(header, -1)
	type weighted struct {
		tag    string
		weight float64
	}
	langs := make([]weighted, 0, len(matches))
	for _, m := range matches {
		w := 1.0
		if m[2] != "" {
			parsed, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			w = parsed
		}
		langs = append(langs, weighted{tag: m[1], weight: w})
	}
	sort.SliceStable(langs, func(i, j int) bool { return langs[i].weight > langs[j].weight })
	tags := make([]string, len(langs))
	for i, l := range langs {
		tags[i] = l.tag
	}
	return tags
}
