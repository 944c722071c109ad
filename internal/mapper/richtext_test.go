package mapper

import (
	"testing"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	cft "github.com/shopmonkeyus/contentful-to-sanity/internal/contentfultest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRichTextParamsAllowsEverything(t *testing.T) {
	export := cft.Export([]contentful.ContentType{cft.ContentType("post", nil, ""), cft.ContentType("author", nil, "")})
	params := ExtractRichTextParams(cft.Field("body", contentful.RichText), export)
	assert.Len(t, params.Styles, 8)
	assert.Len(t, params.Lists, 2)
	assert.Len(t, params.Marks.Decorators, 6)
	require.Len(t, params.Marks.Annotations, 3)
	assert.Equal(t, AnnotationLink, params.Marks.Annotations[0].Name)
	assert.Equal(t, AnnotationInternalLink, params.Marks.Annotations[1].Name)
	assert.Equal(t, AnnotationAssetLink, params.Marks.Annotations[2].Name)
	assert.True(t, params.CanEmbedEntries)
	assert.True(t, params.CanEmbedEntriesInline)
	assert.True(t, params.CanEmbedAssets)
	assert.True(t, params.CanUseBreaks)
	assert.Equal(t, []string{"post", "author"}, params.EmbeddedBlockTypes)
	assert.Equal(t, []string{"post", "author"}, params.EmbeddedInlineTypes)
}

func TestExtractRichTextParamsNodeValidations(t *testing.T) {
	export := cft.Export([]contentful.ContentType{cft.ContentType("post", nil, ""), cft.ContentType("author", nil, "")})
	field := cft.Field("body", contentful.RichText)
	field.Validations = []contentful.Validation{
		{EnabledNodeTypes: []string{contentful.NodeEmbeddedEntryBlock, contentful.NodeOrderedList}},
		{EnabledMarks: []string{}},
		{Nodes: map[string][]contentful.Validation{
			contentful.NodeEmbeddedEntryBlock: {{LinkContentType: []string{"author", "gone"}}},
		}},
	}
	params := ExtractRichTextParams(field, export)
	assert.Len(t, params.Styles, 1)
	assert.Len(t, params.Lists, 1)
	assert.Equal(t, "number", params.Lists[0].Value)
	assert.Empty(t, params.Marks.Decorators)
	assert.Empty(t, params.Marks.Annotations)
	assert.False(t, params.CanUseBreaks)
	assert.False(t, params.CanEmbedAssets)
	assert.False(t, params.CanEmbedEntriesInline)
	assert.Equal(t, []string{"author"}, params.EmbeddedBlockTypes)
	assert.Nil(t, params.EmbeddedInlineTypes)
}

func TestStyleFor(t *testing.T) {
	style, ok := StyleFor(contentful.NodeParagraph)
	assert.True(t, ok)
	assert.Equal(t, "normal", style)
	style, ok = StyleFor(contentful.NodeHeading3)
	assert.True(t, ok)
	assert.Equal(t, "h3", style)
	_, ok = StyleFor(contentful.NodeHR)
	assert.False(t, ok)
}
