// Package contentfultest builds source export fixtures for tests.
package contentfultest

import (
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
)

const timestamp = "2022-02-15T10:00:00Z"

// Link returns a link to the entity.
func Link(linkType string, id string) contentful.SysLink {
	return contentful.SysLink{Sys: contentful.LinkSys{Type: "Link", LinkType: linkType, ID: id}}
}

// RawLink returns a link as it appears in raw entry field values.
func RawLink(linkType string, id string) map[string]any {
	return map[string]any{"sys": map[string]any{"type": "Link", "linkType": linkType, "id": id}}
}

// ContentType returns a content type named after its id.
func ContentType(id string, fields []contentful.Field, displayField string) contentful.ContentType {
	return contentful.ContentType{
		Sys: contentful.Sys{
			ID:        id,
			Type:      "ContentType",
			CreatedAt: timestamp,
			UpdatedAt: timestamp,
			Version:   1,
		},
		Name:         id,
		DisplayField: displayField,
		Fields:       fields,
	}
}

// Field returns a field named after its id.
func Field(id string, typ contentful.FieldType) contentful.Field {
	return contentful.Field{ID: id, Name: id, Type: typ}
}

// Control returns an editor control for the field with the widget.
func Control(fieldID string, widgetID string, settings contentful.Settings) contentful.Control {
	return contentful.Control{
		FieldID:         fieldID,
		WidgetID:        widgetID,
		WidgetNamespace: "builtin",
		Settings:        settings,
	}
}

// EditorInterface returns the editor interface of the content type.
func EditorInterface(contentTypeID string, controls ...contentful.Control) contentful.EditorInterface {
	ct := Link(contentful.LinkTypeContentType, contentTypeID)
	return contentful.EditorInterface{
		Sys: contentful.Sys{
			ID:          "default",
			Type:        "EditorInterface",
			ContentType: &ct,
		},
		Controls: controls,
	}
}

// Locales returns the locales with the first one flagged as default.
func Locales(codes ...string) []contentful.Locale {
	locales := make([]contentful.Locale, 0, len(codes))
	for i, code := range codes {
		locales = append(locales, contentful.Locale{Code: code, Name: code, Default: i == 0})
	}
	return locales
}

// Entry returns an entry of the content type. Fields are keyed by field id and then by locale code.
func Entry(id string, contentTypeID string, fields map[string]map[string]any) contentful.Entry {
	ct := Link(contentful.LinkTypeContentType, contentTypeID)
	return contentful.Entry{
		Sys: contentful.Sys{
			ID:          id,
			Type:        "Entry",
			CreatedAt:   timestamp,
			UpdatedAt:   timestamp,
			Version:     1,
			ContentType: &ct,
		},
		Fields: fields,
	}
}

// Asset returns an asset with one file for the locale.
func Asset(id string, locale string, url string, contentType string) contentful.Asset {
	return contentful.Asset{
		Sys: contentful.Sys{ID: id, Type: "Asset", CreatedAt: timestamp, UpdatedAt: timestamp, Version: 1},
		Fields: contentful.AssetFields{
			Title: map[string]string{locale: id},
			File: map[string]*contentful.AssetFile{
				locale: {URL: url, FileName: id, ContentType: contentType},
			},
		},
	}
}

// Tag returns a tag.
func Tag(id string, name string) contentful.Tag {
	return contentful.Tag{Sys: contentful.Sys{ID: id, Type: "Tag"}, Name: name}
}

// Export returns an export with the content types, one editor interface per content type, and the en-US locale.
func Export(contentTypes []contentful.ContentType, interfaces ...contentful.EditorInterface) *contentful.Export {
	return &contentful.Export{
		ContentTypes:     contentTypes,
		EditorInterfaces: interfaces,
		Locales:          Locales("en-US"),
	}
}
