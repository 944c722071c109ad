package sanity

import "strings"

// Document is a target document. Keys starting with an underscore are system attributes.
type Document map[string]any

// NewDocument returns a document with the system attributes set. The revision is the id.
func NewDocument(id string, typ string, createdAt string, updatedAt string) Document {
	return Document{
		"_id":        id,
		"_rev":       id,
		"_type":      typ,
		"_createdAt": createdAt,
		"_updatedAt": updatedAt,
	}
}

// ID returns the document id.
func (d Document) ID() string {
	id, _ := d["_id"].(string)
	return id
}

// Type returns the document type.
func (d Document) Type() string {
	typ, _ := d["_type"].(string)
	return typ
}

// SlugValue is the value of a slug field.
type SlugValue struct {
	Current string `json:"current"`
}

// GeopointValue is the value of a geopoint field.
type GeopointValue struct {
	Type string  `json:"_type"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// NewGeopoint returns a geopoint value.
func NewGeopoint(lat float64, lng float64) GeopointValue {
	return GeopointValue{Type: TypeGeopoint, Lat: lat, Lng: lng}
}

// ReferenceValue points at another document or asset by id.
type ReferenceValue struct {
	Type string `json:"_type"`
	Key  string `json:"_key,omitempty"`
	Ref  string `json:"_ref"`
	Weak bool   `json:"_weak,omitempty"`
	// Asset is set on references resolved from asset links as <kind>@<url>.
	Asset string `json:"_sanityAsset,omitempty"`
}

// NewReference returns a reference to the document id.
func NewReference(id string, weak bool) *ReferenceValue {
	return &ReferenceValue{Type: TypeReference, Ref: id, Weak: weak}
}

// IsAsset returns true if the reference originates from an asset link.
func (r *ReferenceValue) IsAsset() bool {
	return r.Asset != ""
}

// AssetObject is the value of an image or file field. Asset is <kind>@<url>; the importer uploads
// the binary and replaces it with an asset reference.
type AssetObject struct {
	Type  string `json:"_type"`
	Key   string `json:"_key,omitempty"`
	Asset string `json:"_sanityAsset"`
}

// NewAssetObject wraps an asset reference as the value of an image or file field.
func NewAssetObject(ref *ReferenceValue) *AssetObject {
	kind, _, _ := strings.Cut(ref.Asset, "@")
	return &AssetObject{Type: kind, Asset: ref.Asset}
}

// Span is a run of text inside a block.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// MarkDef is an annotation referenced by the marks of a span.
type MarkDef struct {
	Type      string          `json:"_type"`
	Key       string          `json:"_key"`
	Href      string          `json:"href,omitempty"`
	Reference *ReferenceValue `json:"reference,omitempty"`
	File      *AssetObject    `json:"file,omitempty"`
}

// BlockValue is a portable text block. Children are spans or inline objects.
type BlockValue struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key"`
	Style    string    `json:"style"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []any     `json:"children"`
	MarkDefs []MarkDef `json:"markDefs"`
}

// Break is the block level horizontal rule.
type Break struct {
	Type  string `json:"_type"`
	Key   string `json:"_key"`
	Style string `json:"style"`
}

// BreakStyleLineBreak is the style of a horizontal rule break.
const BreakStyleLineBreak = "lineBreak"
