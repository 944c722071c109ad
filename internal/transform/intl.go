package transform

import (
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
)

// Internationalization bookkeeping fields of localized documents.
const (
	FieldI18nLang = "__i18n_lang"
	FieldI18nRefs = "__i18n_refs"
	FieldI18nBase = "__i18n_base"
)

// LocalizedID returns the id of the document of id for the locale. The default locale keeps the base id.
func LocalizedID(id string, locale string, opts internal.Options) string {
	if !opts.MultiLocale() || opts.IsDefaultLocale(locale) {
		return id
	}
	if opts.IDStructure == internal.IDStructureDelimiter {
		return id + "__i18n_" + locale
	}
	return "i18n." + id + "." + locale
}

// IntlFields returns the fields linking the translations of one document. The default locale document
// references every other supported locale; the others get their localized id and reference the base.
// The result depends only on the arguments.
func IntlFields(id string, locale string, opts internal.Options) map[string]any {
	fields := map[string]any{FieldI18nLang: locale}
	if opts.IsDefaultLocale(locale) {
		refs := make([]map[string]any, 0, len(opts.SupportedLocales))
		for _, l := range opts.SupportedLocales {
			if l == locale {
				continue
			}
			refs = append(refs, map[string]any{
				"_key":  l,
				"_type": "reference",
				"_ref":  LocalizedID(id, l, opts),
				"_weak": true,
			})
		}
		fields[FieldI18nRefs] = refs
		return fields
	}
	fields["_id"] = LocalizedID(id, locale, opts)
	fields[FieldI18nBase] = map[string]any{
		"_type": "reference",
		"_ref":  id,
		"_weak": true,
	}
	return fields
}
