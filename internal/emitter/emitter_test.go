package emitter

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	cft "github.com/shopmonkeyus/contentful-to-sanity/internal/contentfultest"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/go-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFormatter struct {
	filepath string
	calls    int
	err      error
}

func (r *recordingFormatter) Format(_ context.Context, filepath string, src string) (string, error) {
	r.filepath = filepath
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return src, nil
}

func postExport() *contentful.Export {
	title := cft.Field("title", contentful.Symbol)
	title.Required = true
	title.DefaultValue = map[string]any{"en-US": "Untitled", "de": "Ohne Titel"}
	ct := cft.ContentType("blog-post", []contentful.Field{title}, "title")
	export := cft.Export([]contentful.ContentType{ct}, cft.EditorInterface("blog-post", cft.Control("title", contentful.WidgetSingleLine, nil)))
	export.Locales = cft.Locales("en-US", "de")
	return export
}

func TestGenerate(t *testing.T) {
	f := &recordingFormatter{}
	out, err := Generate(context.Background(), logger.NewTestLogger(), postExport(), internal.Options{Filepath: "schemas/index.js"}, f)
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "schemas/index.js", f.filepath)
	assert.True(t, strings.HasPrefix(out, Banner+"\n"))
	assert.NotContains(t, out, "defineType")
	assert.Contains(t, out, "export const blogPostType = {")
	assert.Contains(t, out, `name: "blog-post",`)
	assert.Contains(t, out, `validation: (Rule) => Rule.required(),`)
	assert.Contains(t, out, `initialValue: "Untitled",`)
	assert.Contains(t, out, `readOnly: ({document}) => document?.contentfulArchived === true,`)
	assert.Contains(t, out, "export const types = [\n  blogPostType,\n];")
	assert.NotContains(t, out, "tagType")
	assert.NotContains(t, out, "breakType")
}

func TestGenerateTypescript(t *testing.T) {
	out, err := Generate(context.Background(), logger.NewTestLogger(), postExport(), internal.Options{Typescript: true}, Passthrough())
	require.NoError(t, err)
	assert.Contains(t, out, typescriptImport)
	assert.Contains(t, out, "export const blogPostType = defineType({")
	assert.Contains(t, out, "defineField({")
	assert.Contains(t, out, "] satisfies SchemaTypeDefinition[];")
}

func TestGenerateMultiLocaleInitialValue(t *testing.T) {
	out, err := Generate(context.Background(), logger.NewTestLogger(), postExport(), internal.Options{IntlMode: internal.IntlModeMultiple}, Passthrough())
	require.NoError(t, err)
	assert.Contains(t, out, "initialValue: {\n")
	assert.Contains(t, out, `de: "Ohne Titel",`)
	assert.Contains(t, out, `"en-US": "Untitled",`)
}

func TestGenerateNoDefaultLocale(t *testing.T) {
	export := postExport()
	export.Locales = []contentful.Locale{{Code: "en-US"}}
	f := &recordingFormatter{}
	_, err := Generate(context.Background(), logger.NewTestLogger(), export, internal.Options{}, f)
	assert.True(t, errors.Is(err, contentful.ErrNoDefaultLocale))
	assert.Equal(t, 0, f.calls)
}

func TestGenerateFormatterError(t *testing.T) {
	f := &recordingFormatter{err: errors.New("boom")}
	_, err := Generate(context.Background(), logger.NewTestLogger(), postExport(), internal.Options{}, f)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestTagSchema(t *testing.T) {
	export := postExport()
	export.Tags = []contentful.Tag{cft.Tag("news", "News")}
	schemas := WithAuxiliarySchemas(logger.NewTestLogger(), nil, export)
	require.Len(t, schemas, 1)
	tag := schemas[0]
	assert.Equal(t, sanity.TypeDocument, tag.Type)
	assert.Equal(t, "tag", tag.Name)
	require.Len(t, tag.Fields, 1)
	assert.Equal(t, "name", tag.Fields[0].Name)
	assert.Equal(t, sanity.TypeString, tag.Fields[0].Type)
	assert.Equal(t, []sanity.Rule{{Flag: sanity.FlagPresence, Constraint: sanity.Required}}, tag.Fields[0].Validation)

	out, err := Emit(context.Background(), logger.NewTestLogger(), nil, export, internal.Options{}, Passthrough())
	require.NoError(t, err)
	assert.Contains(t, out, "export const tagType = {")
}

func TestTagSchemaCollision(t *testing.T) {
	export := postExport()
	export.Tags = []contentful.Tag{cft.Tag("news", "News")}
	user := sanity.Schema{Type: sanity.TypeDocument, Name: "tag", Title: "My tag"}
	schemas := WithAuxiliarySchemas(logger.NewTestLogger(), []sanity.Schema{user}, export)
	require.Len(t, schemas, 1)
	assert.Equal(t, "My tag", schemas[0].Title)
}

func TestBreakSchema(t *testing.T) {
	body := sanity.Array("body").Of(sanity.Block("block").Anonymous(), sanity.Member(sanity.TypeBreak)).MustBuild()
	post := sanity.Schema{Type: sanity.TypeDocument, Name: "post", Fields: []sanity.Field{body}}
	schemas := WithAuxiliarySchemas(logger.NewTestLogger(), []sanity.Schema{post}, postExport())
	require.Len(t, schemas, 2)
	assert.Equal(t, "break", schemas[1].Name)
	assert.Equal(t, sanity.TypeObject, schemas[1].Type)

	user := sanity.Schema{Type: sanity.TypeObject, Name: "break"}
	schemas = WithAuxiliarySchemas(logger.NewTestLogger(), []sanity.Schema{post, user}, postExport())
	assert.Len(t, schemas, 2)

	schemas = WithAuxiliarySchemas(logger.NewTestLogger(), []sanity.Schema{{Type: sanity.TypeDocument, Name: "plain"}}, postExport())
	assert.Len(t, schemas, 1)
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "blogPostType", Identifier("blog-post"))
	assert.Equal(t, "contentfulImageType", Identifier("contentful_image"))
	assert.Equal(t, "tagType", Identifier("tag"))
}
