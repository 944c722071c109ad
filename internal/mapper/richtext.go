package mapper

import (
	"slices"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
)

// Annotation names used in the block marks and the produced mark definitions.
const (
	AnnotationLink         = "link"
	AnnotationInternalLink = "internalLink"
	AnnotationAssetLink    = "assetLink"
)

var decorators = []struct {
	mark  string
	title string
	value string
}{
	{contentful.MarkBold, "Strong", "strong"},
	{contentful.MarkItalic, "Emphasis", "em"},
	{contentful.MarkUnderline, "Underline", "underline"},
	{contentful.MarkCode, "Code", "code"},
	{contentful.MarkSuperscript, "Sup", "sup"},
	{contentful.MarkSubscript, "Sub", "sub"},
}

// DecoratorFor returns the decorator value of the rich text mark.
func DecoratorFor(mark string) (string, bool) {
	for _, d := range decorators {
		if d.mark == mark {
			return d.value, true
		}
	}
	return "", false
}

func decoratorValues(marks []string) []string {
	res := make([]string, 0, len(marks))
	for _, m := range marks {
		if v, ok := DecoratorFor(m); ok {
			res = append(res, v)
		}
	}
	return res
}

var headingStyles = []struct {
	node  string
	title string
	value string
}{
	{contentful.NodeHeading1, "H1", "h1"},
	{contentful.NodeHeading2, "H2", "h2"},
	{contentful.NodeHeading3, "H3", "h3"},
	{contentful.NodeHeading4, "H4", "h4"},
	{contentful.NodeHeading5, "H5", "h5"},
	{contentful.NodeHeading6, "H6", "h6"},
	{contentful.NodeBlockquote, "Quote", "blockquote"},
}

// StyleFor returns the block style of the rich text block node.
func StyleFor(nodeType string) (string, bool) {
	if nodeType == contentful.NodeParagraph {
		return "normal", true
	}
	for _, s := range headingStyles {
		if s.node == nodeType {
			return s.value, true
		}
	}
	return "", false
}

// RichTextParams is what a rich text field allows, derived from its validations.
type RichTextParams struct {
	Styles []sanity.TitleValue
	Lists  []sanity.TitleValue
	Marks  sanity.Marks

	CanEmbedEntries       bool
	CanEmbedEntriesInline bool
	CanEmbedAssets        bool
	CanUseBreaks          bool

	// EmbeddedBlockTypes are the content types that can be embedded as blocks.
	EmbeddedBlockTypes []string
	// EmbeddedInlineTypes are the content types that can be embedded inline.
	EmbeddedInlineTypes []string
}

// ExtractRichTextParams inspects the validations of a rich text field. A field without an
// enabledNodeTypes (or enabledMarks) validation allows every node type (or mark).
func ExtractRichTextParams(field contentful.Field, export *contentful.Export) RichTextParams {
	nodeTypes := contentful.AllNodeTypes
	if v := field.FindValidation(func(v contentful.Validation) bool { return v.EnabledNodeTypes != nil }); v != nil {
		nodeTypes = v.EnabledNodeTypes
	}
	marks := contentful.AllMarks
	if v := field.FindValidation(func(v contentful.Validation) bool { return v.EnabledMarks != nil }); v != nil {
		marks = v.EnabledMarks
	}
	var nodes map[string][]contentful.Validation
	if v := field.FindValidation(func(v contentful.Validation) bool { return v.Nodes != nil }); v != nil {
		nodes = v.Nodes
	}
	allows := func(nodeType string) bool {
		return slices.Contains(nodeTypes, nodeType)
	}

	params := RichTextParams{
		Styles:                []sanity.TitleValue{{Title: "Normal", Value: "normal"}},
		CanEmbedEntries:       allows(contentful.NodeEmbeddedEntryBlock),
		CanEmbedEntriesInline: allows(contentful.NodeEmbeddedEntryInline),
		CanEmbedAssets:        allows(contentful.NodeEmbeddedAssetBlock),
		CanUseBreaks:          allows(contentful.NodeHR),
	}
	for _, s := range headingStyles {
		if allows(s.node) {
			params.Styles = append(params.Styles, sanity.TitleValue{Title: s.title, Value: s.value})
		}
	}
	if allows(contentful.NodeUnorderedList) {
		params.Lists = append(params.Lists, sanity.TitleValue{Title: "Bullet", Value: "bullet"})
	}
	if allows(contentful.NodeOrderedList) {
		params.Lists = append(params.Lists, sanity.TitleValue{Title: "Numbered", Value: "number"})
	}
	for _, d := range decorators {
		if slices.Contains(marks, d.mark) {
			params.Marks.Decorators = append(params.Marks.Decorators, sanity.TitleValue{Title: d.title, Value: d.value})
		}
	}

	if allows(contentful.NodeHyperlink) {
		params.Marks.Annotations = append(params.Marks.Annotations, sanity.Object(AnnotationLink).
			Title("Link").
			Fields(sanity.URL("href").Title("URL").MustBuild()).
			MustBuild())
	}
	if allows(contentful.NodeEntryHyperlink) {
		params.Marks.Annotations = append(params.Marks.Annotations, sanity.Object(AnnotationInternalLink).
			Title("Internal link").
			Fields(sanity.Reference("reference").To(linkedTypes(nodes[contentful.NodeEntryHyperlink], export)...).MustBuild()).
			MustBuild())
	}
	if allows(contentful.NodeAssetHyperlink) {
		params.Marks.Annotations = append(params.Marks.Annotations, sanity.Object(AnnotationAssetLink).
			Title("Asset link").
			Fields(sanity.File("file").MustBuild()).
			MustBuild())
	}

	if params.CanEmbedEntries {
		params.EmbeddedBlockTypes = linkedTypes(nodes[contentful.NodeEmbeddedEntryBlock], export)
	}
	if params.CanEmbedEntriesInline {
		params.EmbeddedInlineTypes = linkedTypes(nodes[contentful.NodeEmbeddedEntryInline], export)
	}
	return params
}

// linkedTypes returns the content types allowed by a linkContentType validation that exist in the
// export, or every content type of the export when there is no such validation. The result holds schema names.
func linkedTypes(validations []contentful.Validation, export *contentful.Export) []string {
	ids := export.ContentTypeIDs()
	for _, v := range validations {
		if len(v.LinkContentType) > 0 {
			ids = util.Intersect(v.LinkContentType, ids)
			break
		}
	}
	for i, id := range ids {
		ids[i] = SchemaName(id)
	}
	return ids
}
