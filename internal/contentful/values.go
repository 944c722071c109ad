package contentful

import (
	"encoding/json"
)

// Rich text node types.
const (
	NodeDocument            = "document"
	NodeParagraph           = "paragraph"
	NodeHeading1            = "heading-1"
	NodeHeading2            = "heading-2"
	NodeHeading3            = "heading-3"
	NodeHeading4            = "heading-4"
	NodeHeading5            = "heading-5"
	NodeHeading6            = "heading-6"
	NodeBlockquote          = "blockquote"
	NodeHR                  = "hr"
	NodeOrderedList         = "ordered-list"
	NodeUnorderedList       = "unordered-list"
	NodeListItem            = "list-item"
	NodeEmbeddedEntryBlock  = "embedded-entry-block"
	NodeEmbeddedAssetBlock  = "embedded-asset-block"
	NodeEmbeddedEntryInline = "embedded-entry-inline"
	NodeHyperlink           = "hyperlink"
	NodeEntryHyperlink      = "entry-hyperlink"
	NodeAssetHyperlink      = "asset-hyperlink"
	NodeText                = "text"
)

// Rich text marks.
const (
	MarkBold        = "bold"
	MarkItalic      = "italic"
	MarkUnderline   = "underline"
	MarkCode        = "code"
	MarkSuperscript = "superscript"
	MarkSubscript   = "subscript"
)

// AllMarks are the marks enabled when a rich text field does not restrict them.
var AllMarks = []string{MarkBold, MarkItalic, MarkUnderline, MarkCode, MarkSuperscript, MarkSubscript}

// AllNodeTypes are the node types enabled when a rich text field does not restrict them.
var AllNodeTypes = []string{
	NodeHeading1, NodeHeading2, NodeHeading3, NodeHeading4, NodeHeading5, NodeHeading6,
	NodeOrderedList, NodeUnorderedList, NodeHR, NodeBlockquote,
	NodeEmbeddedEntryBlock, NodeEmbeddedAssetBlock, NodeEmbeddedEntryInline,
	NodeHyperlink, NodeEntryHyperlink, NodeAssetHyperlink,
}

// Mark is a text mark.
type Mark struct {
	Type string `json:"type"`
}

// NodeData is the data payload of a rich text node.
type NodeData struct {
	URI    string   `json:"uri,omitempty"`
	Target *SysLink `json:"target,omitempty"`
}

// Node is a rich text node.
type Node struct {
	NodeType string   `json:"nodeType"`
	Data     NodeData `json:"data"`
	Content  []Node   `json:"content,omitempty"`
	Value    string   `json:"value,omitempty"`
	Marks    []Mark   `json:"marks,omitempty"`
}

// LatLon is a geographic point.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AsLink returns the link if the raw value is link shaped.
func AsLink(value any) (*SysLink, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	sys, ok := obj["sys"].(map[string]any)
	if !ok {
		return nil, false
	}
	if t, _ := sys["type"].(string); t != "Link" {
		return nil, false
	}
	id, _ := sys["id"].(string)
	linkType, _ := sys["linkType"].(string)
	if id == "" || linkType == "" {
		return nil, false
	}
	return &SysLink{Sys: LinkSys{Type: "Link", LinkType: linkType, ID: id}}, true
}

// AsLocation returns the location if the raw value is a geographic point.
func AsLocation(value any) (*LatLon, bool) {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 2 {
		return nil, false
	}
	lat, ok := obj["lat"].(float64)
	if !ok {
		return nil, false
	}
	lon, ok := obj["lon"].(float64)
	if !ok {
		return nil, false
	}
	return &LatLon{Lat: lat, Lon: lon}, true
}

// AsRichText returns the document node if the raw value is a rich text document.
func AsRichText(value any) (*Node, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	if t, _ := obj["nodeType"].(string); t != NodeDocument {
		return nil, false
	}
	if _, ok := obj["content"].([]any); !ok {
		return nil, false
	}
	buf, err := json.Marshal(obj)
	if err != nil {
		return nil, false
	}
	var node Node
	if err := json.Unmarshal(buf, &node); err != nil {
		return nil, false
	}
	return &node, true
}
