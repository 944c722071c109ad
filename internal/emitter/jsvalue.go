package emitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// quote returns s as a JavaScript string literal.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func objectKey(k string) string {
	if identifierRegex.MatchString(k) {
		return k
	}
	return quote(k)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// property is one key of an object literal. The value is already rendered.
type property struct {
	key   string
	value string
}

// jsWriter renders schema records as JavaScript object literals with stable key order.
type jsWriter struct {
	// compact renders literals on a single line.
	compact       bool
	typescript    bool
	multiLocale   bool
	defaultLocale string
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}

func (w *jsWriter) object(props []property) string {
	if len(props) == 0 {
		return "{}"
	}
	if w.compact {
		parts := make([]string, 0, len(props))
		for _, p := range props {
			parts = append(parts, objectKey(p.key)+": "+p.value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	for _, p := range props {
		sb.WriteString("\n  ")
		sb.WriteString(objectKey(p.key))
		sb.WriteString(": ")
		sb.WriteString(indent(p.value))
		sb.WriteString(",")
	}
	sb.WriteString("\n}")
	return sb.String()
}

func (w *jsWriter) array(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	if w.compact {
		return "[" + strings.Join(items, ", ") + "]"
	}
	var sb strings.Builder
	sb.WriteString("[")
	for _, item := range items {
		sb.WriteString("\n  ")
		sb.WriteString(indent(item))
		sb.WriteString(",")
	}
	sb.WriteString("\n]")
	return sb.String()
}

// value renders plain data: scalars, lists, maps and option entries.
func (w *jsWriter) value(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return number(val)
	case float32:
		return number(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case sanity.Expression:
		return string(val)
	case sanity.TitleValue:
		return w.object([]property{{"title", quote(val.Title)}, {"value", w.value(val.Value)}})
	case []string:
		items := make([]string, 0, len(val))
		for _, s := range val {
			items = append(items, quote(s))
		}
		return w.array(items)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, w.value(item))
		}
		return w.array(items)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		props := make([]property, 0, len(keys))
		for _, k := range keys {
			props = append(props, property{k, w.value(val[k])})
		}
		return w.object(props)
	}
	return quote(fmt.Sprint(v))
}

// initialValue resolves the per locale default value. It returns false when nothing should be written.
func (w *jsWriter) initialValue(values map[string]any) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	if w.multiLocale {
		return w.value(values), true
	}
	v, ok := values[w.defaultLocale]
	if !ok {
		return "", false
	}
	return w.value(v), true
}

func (w *jsWriter) titleValues(list []sanity.TitleValue) string {
	items := make([]string, 0, len(list))
	for _, tv := range list {
		items = append(items, w.value(tv))
	}
	return w.array(items)
}

func (w *jsWriter) options(o *sanity.Options) string {
	var props []property
	if len(o.List) > 0 {
		props = append(props, property{"list", w.value(o.List)})
	}
	if o.Layout != "" {
		props = append(props, property{"layout", quote(o.Layout)})
	}
	if o.Source != "" {
		props = append(props, property{"source", quote(o.Source)})
	}
	if o.DateFormat != "" {
		props = append(props, property{"dateFormat", quote(o.DateFormat)})
	}
	if o.TimeFormat != "" {
		props = append(props, property{"timeFormat", quote(o.TimeFormat)})
	}
	return w.object(props)
}

// fields renders a field list. In typescript mode each field is wrapped in defineField.
func (w *jsWriter) fields(fields []sanity.Field) string {
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if w.typescript {
			items = append(items, "defineField("+w.field(f)+")")
		} else {
			items = append(items, w.field(f))
		}
	}
	return w.array(items)
}

func (w *jsWriter) members(fields []sanity.Field) string {
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		items = append(items, w.field(f))
	}
	return w.array(items)
}

func (w *jsWriter) field(f sanity.Field) string {
	var props []property
	if f.Name != "" {
		props = append(props, property{"name", quote(f.Name)})
	}
	props = append(props, property{"type", quote(f.Type)})
	if f.Title != "" {
		props = append(props, property{"title", quote(f.Title)})
	}
	if f.Description != "" {
		props = append(props, property{"description", quote(f.Description)})
	}
	if f.Hidden {
		props = append(props, property{"hidden", "true"})
	}
	if f.ReadOnly {
		props = append(props, property{"readOnly", "true"})
	}
	if v, ok := w.initialValue(f.InitialValue); ok {
		props = append(props, property{"initialValue", v})
	}
	if rules := serializeRules(f.Validation); rules != "" {
		props = append(props, property{"validation", rules})
	}
	if !f.Options.IsZero() {
		props = append(props, property{"options", w.options(f.Options)})
	}
	if len(f.Of) > 0 {
		props = append(props, property{"of", w.members(f.Of)})
	}
	if len(f.To) > 0 {
		to := make([]string, 0, len(f.To))
		for _, t := range f.To {
			to = append(to, w.object([]property{{"type", quote(t.Type)}}))
		}
		props = append(props, property{"to", w.array(to)})
	}
	if len(f.Fields) > 0 {
		props = append(props, property{"fields", w.fields(f.Fields)})
	}
	if len(f.Styles) > 0 {
		props = append(props, property{"styles", w.titleValues(f.Styles)})
	}
	if len(f.Lists) > 0 {
		props = append(props, property{"lists", w.titleValues(f.Lists)})
	}
	if f.Marks != nil {
		marks := []property{{"decorators", w.titleValues(f.Marks.Decorators)}}
		if len(f.Marks.Annotations) > 0 {
			marks = append(marks, property{"annotations", w.members(f.Marks.Annotations)})
		}
		props = append(props, property{"marks", w.object(marks)})
	}
	return w.object(props)
}

func (w *jsWriter) schema(s sanity.Schema) string {
	props := []property{
		{"name", quote(s.Name)},
		{"type", quote(s.Type)},
	}
	if s.Title != "" {
		props = append(props, property{"title", quote(s.Title)})
	}
	if s.Description != "" {
		props = append(props, property{"description", quote(s.Description)})
	}
	if s.ReadOnly != "" {
		props = append(props, property{"readOnly", string(s.ReadOnly)})
	}
	props = append(props, property{"fields", w.fields(s.Fields)})
	if s.Preview != nil {
		sel := []property{{"title", quote(s.Preview.Select.Title)}}
		if s.Preview.Select.Subtitle != "" {
			sel = append(sel, property{"subtitle", quote(s.Preview.Select.Subtitle)})
		}
		if s.Preview.Select.Media != "" {
			sel = append(sel, property{"media", quote(s.Preview.Select.Media)})
		}
		props = append(props, property{"preview", w.object([]property{{"select", w.object(sel)}})})
	}
	return w.object(props)
}
