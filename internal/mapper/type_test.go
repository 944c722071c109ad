package mapper

import (
	"testing"

	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	cft "github.com/shopmonkeyus/contentful-to-sanity/internal/contentfultest"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/go-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogExport() (contentful.ContentType, *contentful.Export) {
	title := cft.Field("title", contentful.Symbol)
	title.Required = true
	slug := cft.Field("slug", contentful.Symbol)
	rating := cft.Field("rating", contentful.Number)
	hidden := cft.Field("internal", contentful.Symbol)
	omitted := cft.Field("legacy", contentful.Symbol)
	omitted.Omitted = true
	ct := cft.ContentType("blogPost", []contentful.Field{title, slug, rating, hidden, omitted}, "slug")
	export := cft.Export([]contentful.ContentType{ct}, cft.EditorInterface("blogPost",
		cft.Control("title", contentful.WidgetSingleLine, nil),
		cft.Control("slug", contentful.WidgetSlugEditor, contentful.Settings{"trackingFieldId": "title"}),
		cft.Control("rating", contentful.WidgetRating, nil),
		cft.Control("legacy", contentful.WidgetSingleLine, nil),
	))
	return ct, export
}

func TestMapContentType(t *testing.T) {
	ct, export := blogExport()
	schema := MapContentType(logger.NewTestLogger(), ct, export, internal.Options{})
	assert.Equal(t, sanity.TypeDocument, schema.Type)
	assert.Equal(t, "blogPost", schema.Name)
	assert.Equal(t, "blogPost", schema.Title)
	require.NotNil(t, schema.Preview)
	assert.Equal(t, "slug.current", schema.Preview.Select.Title)
	assert.Equal(t, ArchivedReadOnly, schema.ReadOnly)

	names := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"title", "slug", "rating", ArchivedField}, names)
	assert.LessOrEqual(t, len(schema.Fields), len(ct.Fields)+1)

	archived := schema.Fields[len(schema.Fields)-1]
	assert.Equal(t, sanity.TypeBoolean, archived.Type)
	assert.True(t, archived.ReadOnly)
	assert.NotEmpty(t, archived.Description)
}

func TestMapContentTypeArchivedFieldOnce(t *testing.T) {
	ct, export := blogExport()
	schema := MapContentType(logger.NewTestLogger(), ct, export, internal.Options{})
	var count int
	for _, f := range schema.Fields {
		if f.Name == ArchivedField {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMapContentTypeIdempotent(t *testing.T) {
	ct, export := blogExport()
	log := logger.NewTestLogger()
	a := MapContentType(log, ct, export, internal.Options{})
	b := MapContentType(log, ct, export, internal.Options{})
	assert.Equal(t, a, b)
}

func TestMapContentTypeReservedName(t *testing.T) {
	ct := cft.ContentType("image", nil, "")
	export := cft.Export([]contentful.ContentType{ct})
	schema := MapContentType(logger.NewTestLogger(), ct, export, internal.Options{})
	assert.Equal(t, "contentful_image", schema.Name)
	assert.Nil(t, schema.Preview)
	assert.Len(t, schema.Fields, 1)
}

func TestMapContentTypePreviewPlainField(t *testing.T) {
	ct, export := blogExport()
	ct.DisplayField = "title"
	schema := MapContentType(logger.NewTestLogger(), ct, export, internal.Options{})
	require.NotNil(t, schema.Preview)
	assert.Equal(t, "title", schema.Preview.Select.Title)
}

func TestMapContentTypes(t *testing.T) {
	_, export := blogExport()
	export.ContentTypes = append(export.ContentTypes, cft.ContentType("author", nil, ""))
	schemas := MapContentTypes(logger.NewTestLogger(), export, internal.Options{})
	require.Len(t, schemas, 2)
	assert.Equal(t, "blogPost", schemas[0].Name)
	assert.Equal(t, "author", schemas[1].Name)
}
