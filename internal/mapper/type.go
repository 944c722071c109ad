package mapper

import (
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
	"github.com/shopmonkeyus/go-common/logger"
)

// ArchivedField is the name of the read only field marking documents archived in the source.
const ArchivedField = "contentfulArchived"

// ArchivedReadOnly makes a document read only once it is marked archived.
const ArchivedReadOnly = sanity.Expression("({document}) => document?.contentfulArchived === true")

// SchemaName returns the schema name of the content type, prefixed when it collides with a built in type.
func SchemaName(contentTypeID string) string {
	if sanity.IsReservedName(contentTypeID) {
		return "contentful_" + contentTypeID
	}
	return contentTypeID
}

func archivedField() sanity.Field {
	return sanity.Boolean(ArchivedField).
		Description("If this document was archived on Contentful at the time of export, the document will be in a read-only state.").
		ReadOnly(true).
		MustBuild()
}

// MapContentType builds the document schema of the content type. Omitted fields and fields without
// a target field are left out. The archived marker field is always the last field.
func MapContentType(logger logger.Logger, contentType contentful.ContentType, export *contentful.Export, opts internal.Options) sanity.Schema {
	schema := sanity.Schema{
		Type:        sanity.TypeDocument,
		Name:        SchemaName(contentType.ID()),
		Title:       contentType.Name,
		Description: contentType.Description,
	}

	if contentType.DisplayField != "" {
		title := contentType.DisplayField
		if control := export.FindEditorControl(contentType.DisplayField, contentType.ID()); control != nil && control.WidgetID == contentful.WidgetSlugEditor {
			title += ".current"
		}
		schema.Preview = &sanity.Preview{Select: sanity.PreviewSelect{Title: title}}
	}

	fields := make([]*sanity.Field, 0, len(contentType.Fields))
	for _, field := range contentType.Fields {
		if field.Omitted {
			logger.Trace("skipping omitted field %s.%s", contentType.ID(), field.ID)
			continue
		}
		fields = append(fields, MapField(logger, contentType, field, export, opts))
	}
	for _, f := range util.Compact(fields) {
		schema.Fields = append(schema.Fields, *f)
	}

	schema.Fields = append(schema.Fields, archivedField())
	schema.ReadOnly = ArchivedReadOnly
	return schema
}

// MapContentTypes builds the document schemas of every content type of the export, in export order.
func MapContentTypes(logger logger.Logger, export *contentful.Export, opts internal.Options) []sanity.Schema {
	schemas := make([]sanity.Schema, 0, len(export.ContentTypes))
	for _, ct := range export.ContentTypes {
		schemas = append(schemas, MapContentType(logger, ct, export, opts))
	}
	return schemas
}
