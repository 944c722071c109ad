package mapper

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/go-common/logger"
)

type fieldContext struct {
	logger      logger.Logger
	contentType contentful.ContentType
	field       contentful.Field
	control     *contentful.Control
	widget      string
	export      *contentful.Export
	opts        internal.Options
	rules       []sanity.Rule
}

// describe sets the attributes every target field carries.
func (c *fieldContext) describe(b *sanity.FieldBuilder) *sanity.FieldBuilder {
	return b.Title(c.field.Name).
		Hidden(c.field.Disabled).
		Description(c.control.Settings.HelpText()).
		Validation(c.rules)
}

func (c *fieldContext) describeWithDefault(b *sanity.FieldBuilder) *sanity.FieldBuilder {
	return c.describe(b).InitialValue(c.field.DefaultValue)
}

func (c *fieldContext) hasWidget(widgets ...string) bool {
	return slices.Contains(widgets, c.widget)
}

// fieldRule is one row of the decision table. A rule matches when the widget is one of widgets
// (or widgets is empty) and when is nil or returns true.
type fieldRule struct {
	widgets []string
	when    func(c *fieldContext) bool
	build   func(c *fieldContext) *sanity.FieldBuilder
}

func (r fieldRule) matches(c *fieldContext) bool {
	if len(r.widgets) > 0 && !c.hasWidget(r.widgets...) {
		return false
	}
	return r.when == nil || r.when(c)
}

var fieldRules = map[contentful.FieldType][]fieldRule{
	contentful.Symbol: {
		{widgets: []string{contentful.WidgetURLEditor}, build: buildURL},
		{widgets: []string{contentful.WidgetSlugEditor}, build: buildSlug},
		{build: buildString},
	},
	contentful.Text: {
		{widgets: []string{contentful.WidgetMultipleLine}, build: buildText},
		{widgets: []string{contentful.WidgetMarkdown}, when: keepMarkdown, build: buildText},
		{build: buildPortableText},
	},
	contentful.Number:   {{build: buildNumber}},
	contentful.Integer:  {{build: buildNumber}},
	contentful.Boolean:  {{build: buildBoolean}},
	contentful.Date:     {{when: dateOnly, build: buildDate}, {build: buildDatetime}},
	contentful.Location: {{build: buildGeopoint}},
	contentful.RichText: {{build: buildRichText}},
	contentful.Link: {
		{when: linksAsset, build: buildAsset},
		{build: buildReference},
	},
	contentful.Array: {{build: buildArray}},
}

// MapField selects the target field for the source field of the content type. It returns nil when the
// field has no editor control or no rule matches its type and widget; such fields are left out of the schema.
func MapField(logger logger.Logger, contentType contentful.ContentType, field contentful.Field, export *contentful.Export, opts internal.Options) *sanity.Field {
	control := export.FindEditorControl(field.ID, contentType.ID())
	if control == nil {
		logger.Trace("dropping field %s.%s: no editor control", contentType.ID(), field.ID)
		internal.FieldsDropped.Inc()
		return nil
	}
	c := &fieldContext{
		logger:      logger,
		contentType: contentType,
		field:       field,
		control:     control,
		widget:      contentful.WidgetFor(control, field),
		export:      export,
		opts:        opts,
		rules:       ExtractValidationRules(field),
	}
	for _, rule := range fieldRules[field.Type] {
		if !rule.matches(c) {
			continue
		}
		f, err := rule.build(c).Build()
		if err != nil {
			logger.Warn("dropping field %s.%s: %s", contentType.ID(), field.ID, err)
			internal.FieldsDropped.Inc()
			return nil
		}
		return &f
	}
	logger.Trace("dropping field %s.%s: unsupported type %s with widget %s", contentType.ID(), field.ID, field.Type, c.widget)
	internal.FieldsDropped.Inc()
	return nil
}

func keepMarkdown(c *fieldContext) bool {
	return c.opts.KeepMarkdown
}

func dateOnly(c *fieldContext) bool {
	return c.control.Settings.DateFormat() == "dateonly"
}

func linksAsset(c *fieldContext) bool {
	return c.field.LinkType == contentful.LinkTypeAsset
}

func layoutFor(widget string) string {
	if widget == contentful.WidgetRadio || widget == contentful.WidgetDropdown {
		return widget
	}
	return ""
}

func buildURL(c *fieldContext) *sanity.FieldBuilder {
	rules := append(slices.Clone(c.rules), URIRule)
	return c.describeWithDefault(sanity.URL(c.field.ID)).Validation(rules)
}

func buildSlug(c *fieldContext) *sanity.FieldBuilder {
	source := c.control.Settings.TrackingFieldID()
	if source == "" {
		source = c.contentType.DisplayField
	}
	b := c.describeWithDefault(sanity.Slug(c.field.ID)).Validation(withoutFlag(c.rules, sanity.FlagUnique))
	if source != "" {
		b.Source(source)
	}
	return b
}

func buildString(c *fieldContext) *sanity.FieldBuilder {
	b := c.describeWithDefault(sanity.String(c.field.ID))
	if values := allowedValues(c.field.Validations); len(values) > 0 {
		list := make([]any, 0, len(values))
		for _, v := range values {
			list = append(list, fmt.Sprint(v))
		}
		b.List(list...)
	}
	if layout := layoutFor(c.widget); layout != "" {
		b.Layout(layout)
	}
	return b
}

func buildText(c *fieldContext) *sanity.FieldBuilder {
	return c.describeWithDefault(sanity.Text(c.field.ID))
}

func buildPortableText(c *fieldContext) *sanity.FieldBuilder {
	return c.describeWithDefault(sanity.Array(c.field.ID)).Of(
		sanity.Block("block").Anonymous(),
		sanity.Image("image").Anonymous(),
	)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func buildNumber(c *fieldContext) *sanity.FieldBuilder {
	b := c.describeWithDefault(sanity.Number(c.field.ID))
	var list []any
	for _, v := range allowedValues(c.field.Validations) {
		if n, ok := toNumber(v); ok {
			list = append(list, n)
		}
	}
	if len(list) == 0 && c.hasWidget(contentful.WidgetRating) {
		for i := 1; i <= c.control.Settings.Stars(); i++ {
			list = append(list, float64(i))
		}
	}
	if len(list) > 0 {
		b.List(list...)
	}
	if layout := layoutFor(c.widget); layout != "" {
		b.Layout(layout)
	}
	return b
}

func buildBoolean(c *fieldContext) *sanity.FieldBuilder {
	if c.control.Settings.TrueLabel() != "" || c.control.Settings.FalseLabel() != "" {
		c.logger.Warn("custom true and false labels are not supported (%s.%s)", c.contentType.ID(), c.field.ID)
	}
	return c.describeWithDefault(sanity.Boolean(c.field.ID))
}

func buildDate(c *fieldContext) *sanity.FieldBuilder {
	return c.describeWithDefault(sanity.Date(c.field.ID))
}

func buildDatetime(c *fieldContext) *sanity.FieldBuilder {
	timeFormat := "H:mm"
	if c.control.Settings.AMPM() == 12 {
		timeFormat = "h:mm a"
	}
	if c.control.Settings.DateFormat() == "timeZ" {
		timeFormat += "Z"
	}
	return c.describeWithDefault(sanity.Datetime(c.field.ID)).TimeFormat(timeFormat)
}

// buildGeopoint has no initial value; locations cannot have a default value in the source.
func buildGeopoint(c *fieldContext) *sanity.FieldBuilder {
	return c.describe(sanity.Geopoint(c.field.ID))
}

func buildRichText(c *fieldContext) *sanity.FieldBuilder {
	params := ExtractRichTextParams(c.field, c.export)
	block := sanity.Block("block").
		Styles(params.Styles...).
		Lists(params.Lists...).
		Marks(params.Marks)
	if params.CanEmbedEntriesInline && len(params.EmbeddedInlineTypes) > 0 {
		block.Of(members(params.EmbeddedInlineTypes)...)
	}
	of := []sanity.Field{block.Anonymous()}
	if params.CanEmbedEntries {
		of = append(of, members(params.EmbeddedBlockTypes)...)
	}
	if params.CanEmbedAssets {
		of = append(of, sanity.Member(sanity.TypeImage), sanity.Member(sanity.TypeFile))
	}
	if params.CanUseBreaks {
		of = append(of, sanity.Member(sanity.TypeBreak))
	}
	return c.describeWithDefault(sanity.Array(c.field.ID)).Of(of...)
}

func members(types []string) []sanity.Field {
	res := make([]sanity.Field, 0, len(types))
	for _, t := range types {
		res = append(res, sanity.Member(t))
	}
	return res
}

func buildAsset(c *fieldContext) *sanity.FieldBuilder {
	return c.describe(assetBuilder(c.field.ID, c.field.Validations))
}

func buildReference(c *fieldContext) *sanity.FieldBuilder {
	return c.describe(sanity.Reference(c.field.ID)).To(linkedTypes(c.field.Validations, c.export)...)
}

func buildArray(c *fieldContext) *sanity.FieldBuilder {
	b := c.describe(sanity.Array(c.field.ID))
	switch c.widget {
	case contentful.WidgetEntryCardsEditor:
		b.Layout("grid")
	case contentful.WidgetTagEditor:
		b.Layout("tags")
	}
	member := MapItems(c.field.Items, c.export)
	if member == nil {
		return b
	}
	b.Of(*member)
	if c.hasWidget(contentful.WidgetCheckbox) && member.Options != nil && len(member.Options.List) > 0 {
		list := make([]any, 0, len(member.Options.List))
		for _, v := range member.Options.List {
			switch tv := v.(type) {
			case sanity.TitleValue:
				list = append(list, tv)
			default:
				list = append(list, sanity.TitleValue{Title: fmt.Sprint(v), Value: v})
			}
		}
		b.List(list...)
	}
	return b
}
