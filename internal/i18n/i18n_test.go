package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAcceptLanguagePreservesDeclaredOrder(t *testing.T) {
	require.Equal(t, []string{"pt", "en", "de"}, ParseAcceptLanguage("pt;en;de"))
}

func TestParseAcceptLanguageRecognizesRegionalTags(t *testing.T) {
	require.Equal(t, []string{"pt-BR", "en-US"}, ParseAcceptLanguage("pt-BR;en-US"))
}

func TestParseAcceptLanguageOrdersByWeight(t *testing.T) {
	require.Equal(t, []string{"en", "pt", "fr"}, ParseAcceptLanguage("pt;q=0.7,fr;q=0.2,en"))
}

func TestParseAcceptLanguageEmptyHeader(t *testing.T) {
	require.Empty(t, ParseAcceptLanguage(""))
}

func TestLookupFallsBackToDefault(t *testing.T) {
	b, err := NewBundle("en", []string{"en", "pt"})
	require.NoError(t, err)

	require.Same(t, b.Lookup(nil), b.Lookup([]string{"jp"}))
}

func TestLookupPicksFirstSupported(t *testing.T) {
	b, err := NewBundle("en", []string{"en", "pt"})
	require.NoError(t, err)

	c := b.Lookup([]string{"de", "pt", "en"})
	require.Equal(t, "Autor não consta no MADR", c.NotFound("author"))
}

func TestCatalogRendersEntities(t *testing.T) {
	b, err := NewBundle("en", []string{"en", "pt"})
	require.NoError(t, err)

	en := b.Lookup([]string{"en"})
	require.Equal(t, "Book not found in MADR", en.NotFound("book"))
	require.Equal(t, "Account already in MADR", en.Conflict("account"))
}

func TestNewBundleRejectsUnknownDefault(t *testing.T) {
	_, err := NewBundle("de", []string{"en", "pt"})
	require.Error(t, err)
}

func TestNewBundleRejectsMissingCatalog(t *testing.T) {
	_, err := NewBundle("en", []string{"en", "kz"})
	require.Error(t, err)
}
