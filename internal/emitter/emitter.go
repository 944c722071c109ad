package emitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/mapper"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/go-common/logger"
)

// Banner is the first line of every generated module.
const Banner = "// generated by contentful-to-sanity"

const typescriptImport = `import {defineField, defineType, type SchemaTypeDefinition} from "sanity";`

// BreakSchema is the object used by portable text for horizontal rules.
func BreakSchema() sanity.Schema {
	return sanity.Schema{
		Type:  sanity.TypeObject,
		Name:  sanity.TypeBreak,
		Title: "Break",
		Fields: []sanity.Field{
			sanity.String("style").List(
				sanity.TitleValue{Title: "Line break", Value: sanity.BreakStyleLineBreak},
				sanity.TitleValue{Title: "Read more", Value: "readMore"},
			).MustBuild(),
		},
	}
}

// TagSchema is the document the source tags are imported as.
func TagSchema() sanity.Schema {
	return sanity.Schema{
		Type:  sanity.TypeDocument,
		Name:  sanity.TypeTag,
		Title: "Tag",
		Fields: []sanity.Field{
			sanity.String("name").
				Title("Name").
				Validation([]sanity.Rule{{Flag: sanity.FlagPresence, Constraint: sanity.Required}}).
				MustBuild(),
		},
	}
}

// Identifier returns the exported constant name of the schema.
func Identifier(schemaName string) string {
	return strcase.ToLowerCamel(schemaName) + "Type"
}

func hasSchema(schemas []sanity.Schema, name string) bool {
	for _, s := range schemas {
		if s.Name == name {
			return true
		}
	}
	return false
}

func usesBreaks(schemas []sanity.Schema) bool {
	for _, s := range schemas {
		if s.HasMember(sanity.TypeBreak) {
			return true
		}
	}
	return false
}

// WithAuxiliarySchemas appends the break object when a schema uses it and the tag document when the
// export has tags. A user schema with the same name is kept and a warning logged instead.
func WithAuxiliarySchemas(logger logger.Logger, schemas []sanity.Schema, export *contentful.Export) []sanity.Schema {
	res := append([]sanity.Schema{}, schemas...)
	if usesBreaks(schemas) {
		if hasSchema(schemas, sanity.TypeBreak) {
			logger.Warn("found a user defined content model called %q, be aware this could result in broken portable text", sanity.TypeBreak)
		} else {
			res = append(res, BreakSchema())
		}
	}
	if len(export.Tags) > 0 {
		if hasSchema(schemas, sanity.TypeTag) {
			logger.Warn("found a user defined content model called %q, please review manually as this could conflict with the imported tags", sanity.TypeTag)
		} else {
			res = append(res, TagSchema())
		}
	}
	return res
}

// Emit renders the schemas and the auxiliary schemas as one module and passes it through the formatter.
// It returns contentful.ErrNoDefaultLocale when the export has no default locale.
func Emit(ctx context.Context, logger logger.Logger, schemas []sanity.Schema, export *contentful.Export, opts internal.Options, formatter Formatter) (string, error) {
	locale, err := export.DefaultLocale()
	if err != nil {
		return "", err
	}
	defaultLocale := opts.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = locale.Code
	}
	w := &jsWriter{
		typescript:    opts.Typescript,
		multiLocale:   opts.MultiLocale(),
		defaultLocale: defaultLocale,
	}

	all := WithAuxiliarySchemas(logger, schemas, export)
	var sb strings.Builder
	sb.WriteString(Banner)
	sb.WriteString("\n")
	if opts.Typescript {
		sb.WriteString(typescriptImport)
		sb.WriteString("\n")
	}
	identifiers := make([]string, 0, len(all))
	for _, s := range all {
		id := Identifier(s.Name)
		identifiers = append(identifiers, id)
		definition := w.schema(s)
		if opts.Typescript {
			definition = "defineType(" + definition + ")"
		}
		fmt.Fprintf(&sb, "\nexport const %s = %s;\n", id, definition)
		logger.Trace("emitted schema %s as %s", s.Name, id)
		internal.SchemasEmitted.Inc()
	}
	sb.WriteString("\nexport const types = ")
	sb.WriteString(w.array(identifiers))
	if opts.Typescript {
		sb.WriteString(" satisfies SchemaTypeDefinition[]")
	}
	sb.WriteString(";\n")

	out, err := formatter.Format(ctx, opts.Filepath, sb.String())
	if err != nil {
		return "", errors.Wrap(err, "error formatting schema module")
	}
	return out, nil
}

// Generate maps every content type of the export and emits the schema module.
func Generate(ctx context.Context, logger logger.Logger, export *contentful.Export, opts internal.Options, formatter Formatter) (string, error) {
	if _, err := export.DefaultLocale(); err != nil {
		return "", err
	}
	schemas := mapper.MapContentTypes(logger.WithPrefix("[mapper]"), export, opts)
	return Emit(ctx, logger, schemas, export, opts, formatter)
}
