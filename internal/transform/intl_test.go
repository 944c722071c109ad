package transform

import (
	"testing"

	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/stretchr/testify/assert"
)

func TestLocalizedID(t *testing.T) {
	multi := internal.Options{
		IntlMode:         internal.IntlModeMultiple,
		IDStructure:      internal.IDStructureSubpath,
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "fr"},
	}
	delimiter := multi
	delimiter.IDStructure = internal.IDStructureDelimiter
	single := multi
	single.IntlMode = internal.IntlModeSingle

	tests := []struct {
		name   string
		opts   internal.Options
		locale string
		want   string
	}{
		{"default locale", multi, "en", "abc"},
		{"subpath", multi, "fr", "i18n.abc.fr"},
		{"delimiter", delimiter, "fr", "abc__i18n_fr"},
		{"single mode", single, "fr", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalizedID("abc", tt.locale, tt.opts))
		})
	}
}

func TestIntlFields(t *testing.T) {
	opts := internal.Options{
		IntlMode:         internal.IntlModeMultiple,
		IDStructure:      internal.IDStructureSubpath,
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "fr", "de"},
	}
	assert.Equal(t, map[string]any{
		FieldI18nLang: "en",
		FieldI18nRefs: []map[string]any{
			{"_key": "fr", "_type": "reference", "_ref": "i18n.abc.fr", "_weak": true},
			{"_key": "de", "_type": "reference", "_ref": "i18n.abc.de", "_weak": true},
		},
	}, IntlFields("abc", "en", opts))

	assert.Equal(t, map[string]any{
		"_id":         "i18n.abc.fr",
		FieldI18nLang: "fr",
		FieldI18nBase: map[string]any{"_type": "reference", "_ref": "abc", "_weak": true},
	}, IntlFields("abc", "fr", opts))

	assert.Equal(t, IntlFields("abc", "de", opts), IntlFields("abc", "de", opts))
}
