package contentful

import (
	"strconv"
	"strings"
)

// Built in editor widget ids.
const (
	WidgetSingleLine       = "singleLine"
	WidgetMultipleLine     = "multipleLine"
	WidgetMarkdown         = "markdown"
	WidgetURLEditor        = "urlEditor"
	WidgetSlugEditor       = "slugEditor"
	WidgetDropdown         = "dropdown"
	WidgetRadio            = "radio"
	WidgetCheckbox         = "checkbox"
	WidgetRating           = "rating"
	WidgetNumberEditor     = "numberEditor"
	WidgetBoolean          = "boolean"
	WidgetDatePicker       = "datePicker"
	WidgetLocationEditor   = "locationEditor"
	WidgetObjectEditor     = "objectEditor"
	WidgetRichTextEditor   = "richTextEditor"
	WidgetEntryLinkEditor  = "entryLinkEditor"
	WidgetEntryCardEditor  = "entryCardEditor"
	WidgetEntryLinksEditor = "entryLinksEditor"
	WidgetEntryCardsEditor = "entryCardsEditor"
	WidgetAssetLinkEditor  = "assetLinkEditor"
	WidgetAssetLinksEditor = "assetLinksEditor"
	WidgetTagEditor        = "tagEditor"
	WidgetListInput        = "listInput"
)

var defaultWidgets = map[FieldType]string{
	Symbol:   WidgetSingleLine,
	Text:     WidgetMarkdown,
	RichText: WidgetRichTextEditor,
	Number:   WidgetNumberEditor,
	Integer:  WidgetNumberEditor,
	Date:     WidgetDatePicker,
	Location: WidgetLocationEditor,
	Boolean:  WidgetBoolean,
	Object:   WidgetObjectEditor,
}

// DefaultWidget returns the built in widget contentful uses for the field when none is configured.
func DefaultWidget(field Field) string {
	switch field.Type {
	case Link:
		if field.LinkType == LinkTypeAsset {
			return WidgetAssetLinkEditor
		}
		return WidgetEntryLinkEditor
	case Array:
		if field.Items == nil {
			return ""
		}
		if field.Items.Type == Link {
			if field.Items.LinkType == LinkTypeAsset {
				return WidgetAssetLinksEditor
			}
			return WidgetEntryLinksEditor
		}
		return WidgetTagEditor
	}
	return defaultWidgets[field.Type]
}

// FindEditorControl returns the editor control for the field of the content type or nil if the
// field has no control (e.g. the field is not visible in the editor).
func (e *Export) FindEditorControl(fieldID string, contentTypeID string) *Control {
	for i := range e.EditorInterfaces {
		ei := &e.EditorInterfaces[i]
		if ei.ContentTypeID() != contentTypeID {
			continue
		}
		for j := range ei.Controls {
			if ei.Controls[j].FieldID == fieldID {
				return &ei.Controls[j]
			}
		}
	}
	return nil
}

// WidgetFor returns the effective widget id for the control of field, falling back to the built in default.
func WidgetFor(control *Control, field Field) string {
	if control != nil && control.WidgetID != "" {
		return control.WidgetID
	}
	return DefaultWidget(field)
}

// Settings is the free form widget settings map. Use the typed accessors; unknown settings are ignored.
type Settings map[string]any

func (s Settings) str(key string) string {
	if s == nil {
		return ""
	}
	switch v := s[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func (s Settings) number(key string, def int) int {
	if s == nil {
		return def
	}
	switch v := s[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// HelpText is the help text shown under the field in the editor.
func (s Settings) HelpText() string {
	return s.str("helpText")
}

// TrackingFieldID is the field a slug widget generates its value from.
func (s Settings) TrackingFieldID() string {
	return s.str("trackingFieldId")
}

// Stars is the number of stars of a rating widget, defaulting to 5.
func (s Settings) Stars() int {
	return s.number("stars", 5)
}

// DateFormat is one of dateonly, time or timeZ, defaulting to timeZ.
func (s Settings) DateFormat() string {
	if v := s.str("format"); v != "" {
		return v
	}
	return "timeZ"
}

// AMPM is 12 or 24, defaulting to 24.
func (s Settings) AMPM() int {
	if s.number("ampm", 24) == 12 {
		return 12
	}
	return 24
}

// TrueLabel is the custom label of the true value of a boolean widget.
func (s Settings) TrueLabel() string {
	return s.str("trueLabel")
}

// FalseLabel is the custom label of the false value of a boolean widget.
func (s Settings) FalseLabel() string {
	return s.str("falseLabel")
}
