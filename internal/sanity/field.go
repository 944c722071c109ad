package sanity

import (
	"slices"
	"strings"
)

// Field kinds.
const (
	TypeString    = "string"
	TypeText      = "text"
	TypeNumber    = "number"
	TypeBoolean   = "boolean"
	TypeDate      = "date"
	TypeDatetime  = "datetime"
	TypeGeopoint  = "geopoint"
	TypeSlug      = "slug"
	TypeURL       = "url"
	TypeFile      = "file"
	TypeImage     = "image"
	TypeReference = "reference"
	TypeArray     = "array"
	TypeBlock     = "block"
	TypeDocument  = "document"
	TypeObject    = "object"
	TypeSpan      = "span"
	TypeBreak     = "break"
	TypeTag       = "tag"
)

// RuleFlag is the kind of a validation rule.
type RuleFlag string

const (
	FlagPresence RuleFlag = "presence"
	FlagURI      RuleFlag = "uri"
	FlagUnique   RuleFlag = "unique"
	FlagMin      RuleFlag = "min"
	FlagMax      RuleFlag = "max"
	FlagRegex    RuleFlag = "regex"
	FlagValid    RuleFlag = "valid"
	FlagInteger  RuleFlag = "integer"
	FlagMarks    RuleFlag = "marks"
)

// Rule is a single validation rule. Rules keep their order.
type Rule struct {
	Flag       RuleFlag
	Constraint any
}

// URIConstraint is the constraint of a uri rule. Scheme entries are regular expression sources.
type URIConstraint struct {
	AllowCredentials bool
	AllowRelative    bool
	RelativeOnly     bool
	Scheme           []string
}

// RegexConstraint is the constraint of a regex rule.
type RegexConstraint struct {
	Pattern string
	Flags   string
}

// Required is the presence constraint of a required field.
const Required = "required"

// TitleValue is an option entry with a display title.
type TitleValue struct {
	Title string
	Value any
}

// TypeRef names a schema type, used for reference targets.
type TypeRef struct {
	Type string
}

// Options are the type specific presentation options of a field.
type Options struct {
	// List is the set of selectable values. Entries are strings, float64 or TitleValue.
	List []any
	// Layout is a presentation hint (radio, dropdown, grid, tags).
	Layout string
	// Source is the field a slug is generated from.
	Source string
	// DateFormat is the date display format.
	DateFormat string
	// TimeFormat is the time display format.
	TimeFormat string
}

// IsZero returns true if no option is set.
func (o *Options) IsZero() bool {
	return o == nil || (len(o.List) == 0 && o.Layout == "" && o.Source == "" && o.DateFormat == "" && o.TimeFormat == "")
}

// Marks are the decorators and annotations of a block.
type Marks struct {
	Decorators  []TitleValue
	Annotations []Field
}

// Field is an immutable field schema record produced by a FieldBuilder.
type Field struct {
	Name         string
	Type         string
	Title        string
	Description  string
	Hidden       bool
	ReadOnly     bool
	InitialValue map[string]any
	Validation   []Rule
	Options      *Options
	Of           []Field
	To           []TypeRef
	Fields       []Field
	Styles       []TitleValue
	Lists        []TitleValue
	Marks        *Marks
}

// HasMember returns true if the field or one of its nested members has the type.
func (f Field) HasMember(typ string) bool {
	for _, m := range f.Of {
		if m.Type == typ || m.HasMember(typ) {
			return true
		}
	}
	for _, m := range f.Fields {
		if m.Type == typ || m.HasMember(typ) {
			return true
		}
	}
	return false
}

// Expression is a raw JavaScript expression emitted verbatim.
type Expression string

// PreviewSelect selects the document fields used for previews.
type PreviewSelect struct {
	Title    string
	Subtitle string
	Media    string
}

// Preview is the preview configuration of a schema.
type Preview struct {
	Select PreviewSelect
}

// Schema is a document or object schema.
type Schema struct {
	Type        string
	Name        string
	Title       string
	Description string
	Fields      []Field
	Preview     *Preview
	ReadOnly    Expression
}

// HasMember returns true if any field of the schema has a (nested) member of the type.
func (s Schema) HasMember(typ string) bool {
	for _, f := range s.Fields {
		if f.Type == typ || f.HasMember(typ) {
			return true
		}
	}
	return false
}

var reservedNames = []string{
	"any", "array", "block", "boolean", "crossDatasetReference", "date", "datetime", "document",
	"email", "file", "geopoint", "globalDocumentReference", "image", "number", "object",
	"reference", "slug", "span", "string", "telephone", "text", "url",
}

// IsReservedName returns true if name collides with a built in type name.
func IsReservedName(name string) bool {
	if slices.Contains(reservedNames, name) {
		return true
	}
	for _, prefix := range []string{"sanity.", "system.", "assist."} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
