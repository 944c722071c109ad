package sanity

import (
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrInvalidField is returned by Build when an option was set that the field kind does not support.
var ErrInvalidField = errors.New("invalid field schema")

// FieldBuilder accumulates the configuration of one field. Create it with one of the kind
// constructors (String, Number, ...) and finish it with Build.
type FieldBuilder struct {
	field   Field
	options Options
	invalid []string
}

func newFieldBuilder(kind string, name string) *FieldBuilder {
	return &FieldBuilder{field: Field{Name: name, Type: kind}}
}

func String(name string) *FieldBuilder    { return newFieldBuilder(TypeString, name) }
func Text(name string) *FieldBuilder      { return newFieldBuilder(TypeText, name) }
func Number(name string) *FieldBuilder    { return newFieldBuilder(TypeNumber, name) }
func Boolean(name string) *FieldBuilder   { return newFieldBuilder(TypeBoolean, name) }
func Date(name string) *FieldBuilder      { return newFieldBuilder(TypeDate, name) }
func Datetime(name string) *FieldBuilder  { return newFieldBuilder(TypeDatetime, name) }
func Geopoint(name string) *FieldBuilder  { return newFieldBuilder(TypeGeopoint, name) }
func Slug(name string) *FieldBuilder      { return newFieldBuilder(TypeSlug, name) }
func URL(name string) *FieldBuilder       { return newFieldBuilder(TypeURL, name) }
func File(name string) *FieldBuilder      { return newFieldBuilder(TypeFile, name) }
func Image(name string) *FieldBuilder     { return newFieldBuilder(TypeImage, name) }
func Reference(name string) *FieldBuilder { return newFieldBuilder(TypeReference, name) }
func Array(name string) *FieldBuilder     { return newFieldBuilder(TypeArray, name) }
func Block(name string) *FieldBuilder     { return newFieldBuilder(TypeBlock, name) }
func Object(name string) *FieldBuilder    { return newFieldBuilder(TypeObject, name) }

// Member returns an anonymous array member of the type, e.g. {type: "blogPost"}.
func Member(typ string) Field {
	return Field{Type: typ}
}

func (b *FieldBuilder) supports(option string, kinds ...string) bool {
	if slices.Contains(kinds, b.field.Type) {
		return true
	}
	b.invalid = append(b.invalid, option)
	return false
}

func (b *FieldBuilder) Title(title string) *FieldBuilder {
	b.field.Title = title
	return b
}

func (b *FieldBuilder) Description(description string) *FieldBuilder {
	b.field.Description = description
	return b
}

func (b *FieldBuilder) Hidden(hidden bool) *FieldBuilder {
	b.field.Hidden = hidden
	return b
}

func (b *FieldBuilder) ReadOnly(readOnly bool) *FieldBuilder {
	b.field.ReadOnly = readOnly
	return b
}

// InitialValue sets the default value keyed by locale code. It is resolved per locale when emitted.
func (b *FieldBuilder) InitialValue(value map[string]any) *FieldBuilder {
	b.field.InitialValue = value
	return b
}

func (b *FieldBuilder) Validation(rules []Rule) *FieldBuilder {
	b.field.Validation = rules
	return b
}

// List sets the selectable values (string, number and array fields).
func (b *FieldBuilder) List(values ...any) *FieldBuilder {
	if b.supports("list", TypeString, TypeNumber, TypeArray) {
		b.options.List = values
	}
	return b
}

// Layout sets the presentation hint (string, number and array fields).
func (b *FieldBuilder) Layout(layout string) *FieldBuilder {
	if b.supports("layout", TypeString, TypeNumber, TypeArray) {
		b.options.Layout = layout
	}
	return b
}

// Source sets the field a slug is generated from.
func (b *FieldBuilder) Source(source string) *FieldBuilder {
	if b.supports("source", TypeSlug) {
		b.options.Source = source
	}
	return b
}

func (b *FieldBuilder) DateFormat(format string) *FieldBuilder {
	if b.supports("dateFormat", TypeDate, TypeDatetime) {
		b.options.DateFormat = format
	}
	return b
}

func (b *FieldBuilder) TimeFormat(format string) *FieldBuilder {
	if b.supports("timeFormat", TypeDatetime) {
		b.options.TimeFormat = format
	}
	return b
}

// Of sets the member types of an array or the inline member types of a block.
func (b *FieldBuilder) Of(members ...Field) *FieldBuilder {
	if b.supports("of", TypeArray, TypeBlock) {
		b.field.Of = members
	}
	return b
}

// To sets the target types of a reference.
func (b *FieldBuilder) To(types ...string) *FieldBuilder {
	if b.supports("to", TypeReference) {
		refs := make([]TypeRef, 0, len(types))
		for _, t := range types {
			refs = append(refs, TypeRef{Type: t})
		}
		b.field.To = refs
	}
	return b
}

// Fields sets the fields of an object.
func (b *FieldBuilder) Fields(fields ...Field) *FieldBuilder {
	if b.supports("fields", TypeObject) {
		b.field.Fields = fields
	}
	return b
}

func (b *FieldBuilder) Styles(styles ...TitleValue) *FieldBuilder {
	if b.supports("styles", TypeBlock) {
		b.field.Styles = styles
	}
	return b
}

func (b *FieldBuilder) Lists(lists ...TitleValue) *FieldBuilder {
	if b.supports("lists", TypeBlock) {
		b.field.Lists = lists
	}
	return b
}

func (b *FieldBuilder) Marks(marks Marks) *FieldBuilder {
	if b.supports("marks", TypeBlock) {
		b.field.Marks = &marks
	}
	return b
}

// Build validates the configuration and returns the field record. The record does not share
// any slice or map with the builder.
func (b *FieldBuilder) Build() (Field, error) {
	if len(b.invalid) > 0 {
		return Field{}, errors.Wrapf(ErrInvalidField, "%s field %q does not support %v", b.field.Type, b.field.Name, b.invalid)
	}
	f := b.field
	f.InitialValue = maps.Clone(f.InitialValue)
	if len(f.InitialValue) == 0 {
		f.InitialValue = nil
	}
	f.Validation = cloneOrNil(f.Validation)
	f.Of = cloneOrNil(f.Of)
	f.To = cloneOrNil(f.To)
	f.Fields = cloneOrNil(f.Fields)
	f.Styles = cloneOrNil(f.Styles)
	f.Lists = cloneOrNil(f.Lists)
	if f.Marks != nil {
		marks := Marks{Decorators: cloneOrNil(f.Marks.Decorators), Annotations: cloneOrNil(f.Marks.Annotations)}
		f.Marks = &marks
	}
	if !b.options.IsZero() {
		opts := b.options
		opts.List = cloneOrNil(opts.List)
		f.Options = &opts
	}
	return f, nil
}

// MustBuild is like Build but panics on an invalid configuration. Use it for fixed schemas.
func (b *FieldBuilder) MustBuild() Field {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}

// Anonymous builds the field without its name, for use as an array member.
func (b *FieldBuilder) Anonymous() Field {
	f := b.MustBuild()
	f.Name = ""
	return f
}

func cloneOrNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}
