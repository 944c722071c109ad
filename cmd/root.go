package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
	"github.com/shopmonkeyus/go-common/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "contentful-to-sanity"
	envPrefix  = "CTS"
)

func mustFlagBool(cmd *cobra.Command, name string, required bool) bool {
	val, err := cmd.Flags().GetBool(name)
	if required && err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	return val
}

func mustFlagString(cmd *cobra.Command, name string, required bool) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	if required && val == "" {
		fmt.Printf("error: required flag --%s missing\n", name)
		os.Exit(1)
	}
	return val
}

func mustFlagInt(cmd *cobra.Command, name string, def int) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	if val <= 0 {
		return def
	}
	return val
}

func mustFlagStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	return val
}

func newLogger(cmd *cobra.Command) logger.Logger {
	if mustFlagBool(cmd, "verbose", false) {
		return logger.NewConsoleLogger(logger.LevelTrace)
	}
	if mustFlagBool(cmd, "silent", false) {
		return logger.NewConsoleLogger(logger.LevelError)
	}
	return logger.NewConsoleLogger()
}

// addOptionFlags registers the flags shared by the commands which transform an export.
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("intl", string(internal.IntlModeSingle), "the intl mode: single or multiple")
	cmd.Flags().String("id-structure", string(internal.IDStructureSubpath), "the localized document id structure: subpath or delimiter")
	cmd.Flags().String("default-locale", "", "the default locale, defaults to the default locale of the export")
	cmd.Flags().StringSlice("locales", nil, "the supported locales, defaults to every locale of the export")
	cmd.Flags().Bool("keep-markdown", false, "keep markdown text fields as text instead of converting them to blocks")
	cmd.Flags().Bool("weak-refs", false, "make every reference weak")
	cmd.Flags().Bool("validate", false, "validate the export file before transforming it")
}

func optionsFromFlags(cmd *cobra.Command) internal.Options {
	opts := internal.Options{
		IntlMode:         internal.IntlMode(mustFlagString(cmd, "intl", false)),
		IDStructure:      internal.IDStructure(mustFlagString(cmd, "id-structure", false)),
		DefaultLocale:    mustFlagString(cmd, "default-locale", false),
		SupportedLocales: mustFlagStringSlice(cmd, "locales"),
		KeepMarkdown:     mustFlagBool(cmd, "keep-markdown", false),
		WeakRefs:         mustFlagBool(cmd, "weak-refs", false),
	}
	if err := opts.Validate(); err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	return opts
}

// bindConfig fills the flags the user did not set from CTS_* environment variables and the optional
// contentful-to-sanity.toml config file in the working directory.
func bindConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "error reading config")
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := v.Get(f.Name)
		var str string
		switch tv := val.(type) {
		case []any:
			parts := make([]string, 0, len(tv))
			for _, p := range tv {
				parts = append(parts, fmt.Sprint(p))
			}
			str = strings.Join(parts, ",")
		default:
			str = fmt.Sprint(val)
		}
		if serr := cmd.Flags().Set(f.Name, str); serr != nil {
			err = errors.Wrapf(serr, "invalid value for %s", f.Name)
		}
	})
	return err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contentful-to-sanity",
	Short: "Convert a contentful export to sanity schemas and documents",
	Long: util.GenerateHelpSection("Contentful to Sanity",
		"Generates a sanity schema module and an importable set of documents from a contentful export file.\n"+
			"Flags may also be set with "+envPrefix+"_* environment variables or in "+configName+".toml."),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "turn on verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "turn off all logging except errors")
}
