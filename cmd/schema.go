package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/emitter"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
	"github.com/shopmonkeyus/go-common/logger"
	"github.com/spf13/cobra"
)

// confirmOverwrite asks before replacing an existing output file. It returns true when the file does not
// exist or the user confirmed.
func confirmOverwrite(log logger.Logger, fn string, confirmed bool) bool {
	if confirmed || !util.Exists(fn) {
		return true
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists, overwrite it?", fn)).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	form.WithTheme(huh.ThemeBase())
	if err := form.Run(); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			log.Error("error running form: %s", err)
			log.Info("You may use --confirm to skip this prompt")
			os.Exit(1)
		}
	}
	return confirmed
}

func loadExport(log logger.Logger, fn string, validate bool) *contentful.Export {
	var export *contentful.Export
	var err error
	util.RunTaskWithSpinner("Loading export...", func() {
		export, err = contentful.LoadExport(fn, validate)
	})
	if err != nil {
		log.Error("error loading export: %s", err)
		os.Exit(1)
	}
	log.Debug("loaded %d content types, %d entries and %d assets from %s", len(export.ContentTypes), len(export.Entries), len(export.Assets), fn)
	return export
}

var schemaCmd = &cobra.Command{
	Use:   "schema <export>",
	Short: "Generate the sanity schema module for a contentful export",
	Long: util.GenerateHelpSection("Schema",
		"Writes one schema per content type plus the types list to a javascript or typescript module.\n"+
			"The module is formatted with prettier when it is installed."),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd).WithPrefix("[schema]")
		defer util.RecoverPanic(log)

		opts := optionsFromFlags(cmd)
		opts.Typescript = mustFlagBool(cmd, "typescript", false)
		out := mustFlagString(cmd, "out", false)
		if out == "" {
			out = "schema.js"
			if opts.Typescript {
				out = "schema.ts"
			}
		}
		opts.Filepath = out

		if !confirmOverwrite(log, out, mustFlagBool(cmd, "confirm", false)) {
			return
		}

		export := loadExport(log, args[0], mustFlagBool(cmd, "validate", false))

		formatter := emitter.Passthrough()
		if !mustFlagBool(cmd, "no-format", false) {
			formatter = emitter.NewPrettierFormatter(log)
		}

		var src string
		var err error
		util.RunTaskWithSpinner("Generating schema...", func() {
			src, err = emitter.Generate(context.Background(), log, export, opts, formatter)
		})
		if err != nil {
			if errors.Is(err, contentful.ErrNoDefaultLocale) {
				log.Error("the export has no default locale, make sure the export includes its locales")
			} else {
				log.Error("error generating schema: %s", err)
			}
			os.Exit(1)
		}
		if err := os.WriteFile(out, []byte(src), 0644); err != nil {
			log.Error("error writing %s: %s", out, err)
			os.Exit(1)
		}

		stats := internal.GetRunStats()
		log.Info("wrote %.0f schemas to %s", stats.SchemasEmitted, out)
		if stats.FieldsDropped > 0 {
			log.Info("%.0f fields have no sanity equivalent and were left out, run with --verbose for details", stats.FieldsDropped)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	addOptionFlags(schemaCmd)
	schemaCmd.Flags().StringP("out", "o", "", "the schema module file, defaults to schema.js or schema.ts")
	schemaCmd.Flags().Bool("typescript", false, "generate a typescript module using defineType and defineField")
	schemaCmd.Flags().Bool("no-format", false, "do not format the module with prettier")
	schemaCmd.Flags().Bool("confirm", false, "overwrite an existing module without asking")
}
