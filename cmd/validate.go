package cmd

import (
	"os"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <export>",
	Short: "Validate a contentful export file",
	Long: util.GenerateHelpSection("Validate",
		"Checks the export against the export json schema and reports the first problems found.\n"+
			"The export must also have a default locale to be transformed."),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd).WithPrefix("[validate]")
		defer util.RecoverPanic(log)

		fn := args[0]
		if !util.Exists(fn) {
			log.Error("export file does not exist: %s", fn)
			os.Exit(1)
		}
		buf, err := util.ReadFile(fn)
		if err != nil {
			log.Error("error reading %s: %s", fn, err)
			os.Exit(1)
		}
		if err := contentful.ValidateExport(buf); err != nil {
			log.Error("%s is not a valid export: %s", fn, err)
			os.Exit(1)
		}
		export, err := contentful.ParseExport(buf)
		if err != nil {
			log.Error("%s", err)
			os.Exit(1)
		}
		locale, err := export.DefaultLocale()
		if err != nil {
			log.Error("%s", err)
			os.Exit(1)
		}
		log.Info("%s is valid: %d content types, %d entries, %d assets, %d locales (default %s)", fn, len(export.ContentTypes), len(export.Entries), len(export.Assets), len(export.Locales), locale.Code)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
