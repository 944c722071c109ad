package contentful

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrNoDefaultLocale is returned when the export has no locale flagged as default.
var ErrNoDefaultLocale = errors.New("no default locale found in the contentful export")

// FieldType is the source field type tag.
type FieldType string

const (
	Symbol   FieldType = "Symbol"
	Text     FieldType = "Text"
	RichText FieldType = "RichText"
	Number   FieldType = "Number"
	Integer  FieldType = "Integer"
	Date     FieldType = "Date"
	Location FieldType = "Location"
	Boolean  FieldType = "Boolean"
	Object   FieldType = "Object"
	Link     FieldType = "Link"
	Array    FieldType = "Array"
)

const (
	LinkTypeEntry       = "Entry"
	LinkTypeAsset       = "Asset"
	LinkTypeContentType = "ContentType"
	LinkTypeTag         = "Tag"
)

// SysLink is a sys link to another entity.
type SysLink struct {
	Sys LinkSys `json:"sys"`
}

// LinkSys is the sys block of a SysLink.
type LinkSys struct {
	Type     string `json:"type"`
	LinkType string `json:"linkType"`
	ID       string `json:"id"`
}

// Sys is the metadata block shared by all entities.
type Sys struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
	Version          int      `json:"version,omitempty"`
	PublishedVersion *int     `json:"publishedVersion,omitempty"`
	ArchivedVersion  *int     `json:"archivedVersion,omitempty"`
	ContentType      *SysLink `json:"contentType,omitempty"`
}

// Range is a min/max pair used by size and range validations.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// DateRange is the dateRange validation.
type DateRange struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// Regexp is the regexp validation.
type Regexp struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags,omitempty"`
}

// Validation is a single field validation. Exactly one of the constraint members is set.
type Validation struct {
	LinkContentType   []string                `json:"linkContentType,omitempty"`
	LinkMimetypeGroup []string                `json:"linkMimetypeGroup,omitempty"`
	In                []any                   `json:"in,omitempty"`
	Size              *Range                  `json:"size,omitempty"`
	Range             *Range                  `json:"range,omitempty"`
	Regexp            *Regexp                 `json:"regexp,omitempty"`
	Unique            bool                    `json:"unique,omitempty"`
	DateRange         *DateRange              `json:"dateRange,omitempty"`
	EnabledMarks      []string                `json:"enabledMarks,omitempty"`
	EnabledNodeTypes  []string                `json:"enabledNodeTypes,omitempty"`
	Nodes             map[string][]Validation `json:"nodes,omitempty"`
	Message           string                  `json:"message,omitempty"`
}

// Items describes the members of an Array field.
type Items struct {
	Type        FieldType    `json:"type"`
	LinkType    string       `json:"linkType,omitempty"`
	Validations []Validation `json:"validations,omitempty"`
}

// Field is a content type field definition.
type Field struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         FieldType      `json:"type"`
	LinkType     string         `json:"linkType,omitempty"`
	Items        *Items         `json:"items,omitempty"`
	Localized    bool           `json:"localized"`
	Required     bool           `json:"required"`
	Disabled     bool           `json:"disabled,omitempty"`
	Omitted      bool           `json:"omitted,omitempty"`
	Validations  []Validation   `json:"validations,omitempty"`
	DefaultValue map[string]any `json:"defaultValue,omitempty"`
}

// FindValidation returns the first validation matching fn or nil.
func (f Field) FindValidation(fn func(v Validation) bool) *Validation {
	for i := range f.Validations {
		if fn(f.Validations[i]) {
			return &f.Validations[i]
		}
	}
	return nil
}

// ContentType is a content model definition.
type ContentType struct {
	Sys          Sys     `json:"sys"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	DisplayField string  `json:"displayField,omitempty"`
	Fields       []Field `json:"fields"`
}

// ID returns the content type id.
func (c ContentType) ID() string {
	return c.Sys.ID
}

// FindField returns the field with the id or nil.
func (c ContentType) FindField(id string) *Field {
	for i := range c.Fields {
		if c.Fields[i].ID == id {
			return &c.Fields[i]
		}
	}
	return nil
}

// Control is the editor widget configuration for a single field.
type Control struct {
	FieldID         string   `json:"fieldId"`
	WidgetID        string   `json:"widgetId,omitempty"`
	WidgetNamespace string   `json:"widgetNamespace,omitempty"`
	Settings        Settings `json:"settings,omitempty"`
}

// EditorInterface associates a content type with its field controls.
type EditorInterface struct {
	Sys      Sys       `json:"sys"`
	Controls []Control `json:"controls,omitempty"`
}

// ContentTypeID returns the id of the content type this interface belongs to.
func (e EditorInterface) ContentTypeID() string {
	if e.Sys.ContentType == nil {
		return ""
	}
	return e.Sys.ContentType.Sys.ID
}

// Locale is a locale of the space.
type Locale struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Default      bool    `json:"default"`
	FallbackCode *string `json:"fallbackCode,omitempty"`
	Optional     bool    `json:"optional,omitempty"`
}

// Metadata carries entry and asset tags.
type Metadata struct {
	Tags []SysLink `json:"tags,omitempty"`
}

// Entry is a content entry. Fields are keyed by field id and then by locale code.
type Entry struct {
	Sys      Sys                       `json:"sys"`
	Fields   map[string]map[string]any `json:"fields"`
	Metadata *Metadata                 `json:"metadata,omitempty"`
}

// ContentTypeID returns the id of the entry content type.
func (e Entry) ContentTypeID() string {
	if e.Sys.ContentType == nil {
		return ""
	}
	return e.Sys.ContentType.Sys.ID
}

// IsArchived returns true if the entry was archived at the time of the export.
func (e Entry) IsArchived() bool {
	return e.Sys.ArchivedVersion != nil
}

// AssetFile is the localized file of an asset.
type AssetFile struct {
	URL         string         `json:"url"`
	FileName    string         `json:"fileName"`
	ContentType string         `json:"contentType"`
	Details     map[string]any `json:"details,omitempty"`
}

// AssetFields are the localized fields of an asset.
type AssetFields struct {
	Title       map[string]string     `json:"title,omitempty"`
	Description map[string]string     `json:"description,omitempty"`
	File        map[string]*AssetFile `json:"file,omitempty"`
}

// Asset is a media asset.
type Asset struct {
	Sys      Sys         `json:"sys"`
	Fields   AssetFields `json:"fields"`
	Metadata *Metadata   `json:"metadata,omitempty"`
}

// Tag is a content tag.
type Tag struct {
	Sys  Sys    `json:"sys"`
	Name string `json:"name"`
}

// Export is the full snapshot of a contentful space. Treat it as read only once loaded.
type Export struct {
	ContentTypes     []ContentType     `json:"contentTypes,omitempty"`
	EditorInterfaces []EditorInterface `json:"editorInterfaces,omitempty"`
	Locales          []Locale          `json:"locales,omitempty"`
	Entries          []Entry           `json:"entries,omitempty"`
	Assets           []Asset           `json:"assets,omitempty"`
	Tags             []Tag             `json:"tags,omitempty"`
	Webhooks         []map[string]any  `json:"webhooks,omitempty"`
	Roles            []map[string]any  `json:"roles,omitempty"`

	once    sync.Once
	entries map[string]*Entry
	assets  map[string]*Asset
	types   map[string]*ContentType
}

func (e *Export) index() {
	e.once.Do(func() {
		e.entries = make(map[string]*Entry, len(e.Entries))
		for i := range e.Entries {
			e.entries[e.Entries[i].Sys.ID] = &e.Entries[i]
		}
		e.assets = make(map[string]*Asset, len(e.Assets))
		for i := range e.Assets {
			e.assets[e.Assets[i].Sys.ID] = &e.Assets[i]
		}
		e.types = make(map[string]*ContentType, len(e.ContentTypes))
		for i := range e.ContentTypes {
			e.types[e.ContentTypes[i].Sys.ID] = &e.ContentTypes[i]
		}
	})
}

// FindEntry returns the entry with the id or nil.
func (e *Export) FindEntry(id string) *Entry {
	e.index()
	return e.entries[id]
}

// FindAsset returns the asset with the id or nil.
func (e *Export) FindAsset(id string) *Asset {
	e.index()
	return e.assets[id]
}

// FindContentType returns the content type with the id or nil.
func (e *Export) FindContentType(id string) *ContentType {
	e.index()
	return e.types[id]
}

// ContentTypeIDs returns the ids of all content types in export order.
func (e *Export) ContentTypeIDs() []string {
	ids := make([]string, 0, len(e.ContentTypes))
	for _, ct := range e.ContentTypes {
		ids = append(ids, ct.Sys.ID)
	}
	return ids
}

// DefaultLocale returns the locale flagged as default or ErrNoDefaultLocale.
func (e *Export) DefaultLocale() (*Locale, error) {
	for i := range e.Locales {
		if e.Locales[i].Default {
			return &e.Locales[i], nil
		}
	}
	return nil, ErrNoDefaultLocale
}

// LocaleCodes returns the codes of all locales in export order.
func (e *Export) LocaleCodes() []string {
	codes := make([]string, 0, len(e.Locales))
	for _, l := range e.Locales {
		codes = append(codes, l.Code)
	}
	return codes
}
