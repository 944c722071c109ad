package transform

import (
	"strings"

	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/mapper"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
)

// ResolveLink turns the link into a reference. Entry links point at the document of the entry for the
// locale; asset links carry the asset url for the importer. It returns nil when the target is not in the
// export, and the caller drops the value.
func (m *Mapper) ResolveLink(link contentful.SysLink, locale string) *sanity.ReferenceValue {
	switch link.Sys.LinkType {
	case contentful.LinkTypeEntry:
		if m.export.FindEntry(link.Sys.ID) == nil {
			return m.unresolved(link)
		}
		return sanity.NewReference(LocalizedID(link.Sys.ID, locale, m.opts), m.opts.WeakRefs)
	case contentful.LinkTypeAsset:
		asset := m.export.FindAsset(link.Sys.ID)
		if asset == nil {
			return m.unresolved(link)
		}
		file := m.assetFile(asset, locale)
		if file == nil || file.URL == "" {
			return m.unresolved(link)
		}
		ref := sanity.NewReference(link.Sys.ID, m.opts.WeakRefs)
		ref.Asset = assetKind(file) + "@" + absoluteURL(file.URL)
		return ref
	}
	return m.unresolved(link)
}

func (m *Mapper) unresolved(link contentful.SysLink) *sanity.ReferenceValue {
	m.logger.Trace("dropping link to %s %s: not found in export", link.Sys.LinkType, link.Sys.ID)
	internal.LinksUnresolved.Inc()
	return nil
}

// assetFile returns the file of the asset for the locale, falling back to the default locale.
func (m *Mapper) assetFile(asset *contentful.Asset, locale string) *contentful.AssetFile {
	if f := asset.Fields.File[locale]; f != nil {
		return f
	}
	return asset.Fields.File[m.opts.DefaultLocale]
}

func assetKind(file *contentful.AssetFile) string {
	if strings.HasPrefix(file.ContentType, "image/") {
		return sanity.TypeImage
	}
	return sanity.TypeFile
}

// absoluteURL adds the https scheme to the protocol relative urls of the asset CDN.
func absoluteURL(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

// linkValue resolves a link used as a field value or array member. Asset links become image or file
// objects of the kind, or of the kind of the asset mime type when kind is empty.
func (m *Mapper) linkValue(link contentful.SysLink, locale string, kind string, keys KeyGenerator, keyed bool) any {
	ref := m.ResolveLink(link, locale)
	if ref == nil {
		return nil
	}
	if ref.IsAsset() {
		obj := assetObject(ref, kind)
		if keyed {
			obj.Key = keys.Key()
		}
		return obj
	}
	if keyed {
		ref.Key = keys.Key()
	}
	return ref
}

// assetObject wraps the asset reference as an image or file object of the kind. An empty kind keeps
// the kind of the asset mime type.
func assetObject(ref *sanity.ReferenceValue, kind string) *sanity.AssetObject {
	if kind != "" {
		_, url, _ := strings.Cut(ref.Asset, "@")
		ref.Asset = kind + "@" + url
	}
	return sanity.NewAssetObject(ref)
}

// fieldAssetKind returns the schema type of the asset links of the field, or empty when the field
// is unknown or does not link assets.
func fieldAssetKind(field *contentful.Field) string {
	switch {
	case field == nil:
		return ""
	case field.Type == contentful.Link && field.LinkType == contentful.LinkTypeAsset:
		return mapper.AssetKind(field.Validations)
	case field.Type == contentful.Array && field.Items != nil && field.Items.LinkType == contentful.LinkTypeAsset:
		return mapper.AssetKind(field.Items.Validations)
	}
	return ""
}
