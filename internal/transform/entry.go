package transform

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/mapper"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/go-common/logger"
)

// Document fields added to every converted entry when applicable.
const (
	FieldArchived = mapper.ArchivedField
	FieldTags     = "contentfulTags"
)

// Mapper converts the entries of one export to documents. It does not modify the export and is safe
// for concurrent use when the KeySource is.
type Mapper struct {
	logger logger.Logger
	export *contentful.Export
	opts   internal.Options
	keys   KeySource
}

// NewMapper returns a mapper for the export. The default and supported locales default to the locales of
// the export. It returns contentful.ErrNoDefaultLocale when the export has no default locale.
func NewMapper(logger logger.Logger, export *contentful.Export, opts internal.Options, keys KeySource) (*Mapper, error) {
	locale, err := export.DefaultLocale()
	if err != nil {
		return nil, err
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = locale.Code
	}
	if len(opts.SupportedLocales) == 0 {
		opts.SupportedLocales = export.LocaleCodes()
	}
	if opts.IntlMode == "" {
		opts.IntlMode = internal.IntlModeSingle
	}
	if opts.IDStructure == "" {
		opts.IDStructure = internal.IDStructureSubpath
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if keys == nil {
		keys = RandomKeys
	}
	return &Mapper{logger: logger, export: export, opts: opts, keys: keys}, nil
}

// Options returns the resolved options.
func (m *Mapper) Options() internal.Options {
	return m.opts
}

// Locales returns the locales documents are produced for: every supported locale in multiple intl
// mode, otherwise only the default locale.
func (m *Mapper) Locales() []string {
	if m.opts.MultiLocale() {
		return slices.Clone(m.opts.SupportedLocales)
	}
	return []string{m.opts.DefaultLocale}
}

// MapEntry converts the entry to the document for the locale. Values that cannot be converted are left out.
func (m *Mapper) MapEntry(entry contentful.Entry, locale string) sanity.Document {
	started := time.Now()
	defer func() {
		internal.TransformDuration.Observe(time.Since(started).Seconds())
	}()

	keys := m.keys(entry.Sys.ID + "/" + locale)
	doc := sanity.NewDocument(entry.Sys.ID, mapper.SchemaName(entry.ContentTypeID()), entry.Sys.CreatedAt, entry.Sys.UpdatedAt)
	if m.opts.MultiLocale() {
		for k, v := range IntlFields(entry.Sys.ID, locale, m.opts) {
			doc[k] = v
		}
	}
	if entry.IsArchived() {
		doc[FieldArchived] = true
	}

	contentType := m.export.FindContentType(entry.ContentTypeID())
	ids := make([]string, 0, len(entry.Fields))
	for id := range entry.Fields {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		value, ok := m.fieldValue(entry, contentType, id, locale)
		if !ok {
			continue
		}
		var field *contentful.Field
		if contentType != nil {
			field = contentType.FindField(id)
		}
		if v := m.mapValue(value, field, m.widget(contentType, entry.ContentTypeID(), id), locale, keys); v != nil {
			doc[id] = v
		} else {
			m.logger.Trace("leaving %s.%s unset for %s", entry.Sys.ID, id, locale)
		}
	}

	if tags := m.tagReferences(entry, keys); len(tags) > 0 {
		doc[FieldTags] = tags
	}
	return doc
}

// fieldValue returns the value of the field for the locale. Fields which are not localized only have a
// value for the default locale, which is used for every locale.
func (m *Mapper) fieldValue(entry contentful.Entry, contentType *contentful.ContentType, id string, locale string) (any, bool) {
	values := entry.Fields[id]
	if v, ok := values[locale]; ok {
		return v, true
	}
	if contentType != nil {
		if field := contentType.FindField(id); field != nil && !field.Localized {
			v, ok := values[m.opts.DefaultLocale]
			return v, ok
		}
	}
	return nil, false
}

// widget resolves the editor widget of the field the same way the schema is generated.
func (m *Mapper) widget(contentType *contentful.ContentType, contentTypeID string, fieldID string) string {
	control := m.export.FindEditorControl(fieldID, contentTypeID)
	if contentType != nil {
		if field := contentType.FindField(fieldID); field != nil {
			return contentful.WidgetFor(control, *field)
		}
	}
	if control != nil {
		return control.WidgetID
	}
	return ""
}

func (m *Mapper) mapValue(value any, field *contentful.Field, widget string, locale string, keys KeyGenerator) any {
	switch v := value.(type) {
	case string:
		switch {
		case widget == contentful.WidgetSlugEditor:
			return sanity.SlugValue{Current: v}
		case widget == contentful.WidgetMarkdown && !m.opts.KeepMarkdown:
			return MarkdownToBlocks(v, keys)
		}
		return v
	case float64, int, int64, json.Number, bool:
		return v
	case []any:
		res := make([]any, 0, len(v))
		for _, item := range v {
			if link, ok := contentful.AsLink(item); ok {
				if resolved := m.linkValue(*link, locale, fieldAssetKind(field), keys, true); resolved != nil {
					res = append(res, resolved)
				}
				continue
			}
			if item != nil {
				res = append(res, item)
			}
		}
		return res
	}
	if link, ok := contentful.AsLink(value); ok {
		return m.linkValue(*link, locale, fieldAssetKind(field), keys, false)
	}
	if loc, ok := contentful.AsLocation(value); ok {
		return sanity.NewGeopoint(loc.Lat, loc.Lon)
	}
	if doc, ok := contentful.AsRichText(value); ok {
		rt := &richText{m: m, locale: locale, keys: keys}
		return rt.convert(doc)
	}
	return nil
}

// tagReferences returns weak references to the tag documents of the entry tags. Tags are only imported
// when the export has tags.
func (m *Mapper) tagReferences(entry contentful.Entry, keys KeyGenerator) []*sanity.ReferenceValue {
	if len(m.export.Tags) == 0 || entry.Metadata == nil {
		return nil
	}
	var refs []*sanity.ReferenceValue
	for _, tag := range entry.Metadata.Tags {
		ref := sanity.NewReference(tag.Sys.ID, true)
		ref.Key = keys.Key()
		refs = append(refs, ref)
	}
	return refs
}

// MapTag converts the tag to a tag document.
func (m *Mapper) MapTag(tag contentful.Tag) sanity.Document {
	doc := sanity.NewDocument(tag.Sys.ID, sanity.TypeTag, tag.Sys.CreatedAt, tag.Sys.UpdatedAt)
	doc["name"] = tag.Name
	return doc
}
