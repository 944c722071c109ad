package internal

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// IntlMode controls how many documents are produced per entry.
type IntlMode string

const (
	// IntlModeSingle produces one document per entry using the default locale.
	IntlModeSingle IntlMode = "single"
	// IntlModeMultiple produces one document per entry and locale with intl linkage.
	IntlModeMultiple IntlMode = "multiple"
)

// IDStructure is the strategy used to derive localized document ids.
type IDStructure string

const (
	// IDStructureSubpath derives ids like i18n.<id>.<locale>
	IDStructureSubpath IDStructure = "subpath"
	// IDStructureDelimiter derives ids like <id>__i18n_<locale>
	IDStructureDelimiter IDStructure = "delimiter"
)

// Options is the configuration shared by the schema and document generation.
type Options struct {

	// Typescript emits typed definitions (defineType / defineField) instead of plain objects.
	Typescript bool

	// IntlMode is either single or multiple.
	IntlMode IntlMode

	// KeepMarkdown keeps markdown Text fields as plain text instead of converting them to blocks.
	KeepMarkdown bool

	// WeakRefs marks every generated reference as weak.
	WeakRefs bool

	// IDStructure is the localized id strategy used in multiple intl mode.
	IDStructure IDStructure

	// DefaultLocale is the locale code of the default locale.
	DefaultLocale string

	// SupportedLocales is the list of all locale codes.
	SupportedLocales []string

	// Filepath is the target path of the schema module, used to select formatting rules.
	Filepath string
}

// MultiLocale returns true if documents are produced per locale.
func (o Options) MultiLocale() bool {
	return o.IntlMode == IntlModeMultiple
}

// IsDefaultLocale returns true if locale is the configured default locale.
func (o Options) IsDefaultLocale(locale string) bool {
	return locale == o.DefaultLocale
}

// ErrInvalidOption is returned by Validate.
var ErrInvalidOption = errors.New("invalid option")

// Validate returns an error if one of the enumerated options has an unknown value.
func (o Options) Validate() error {
	switch o.IntlMode {
	case "", IntlModeSingle, IntlModeMultiple:
	default:
		return errors.Wrapf(ErrInvalidOption, "intl mode %s", o.IntlMode)
	}
	switch o.IDStructure {
	case "", IDStructureSubpath, IDStructureDelimiter:
	default:
		return errors.Wrapf(ErrInvalidOption, "id structure %s", o.IDStructure)
	}
	if o.DefaultLocale != "" && len(o.SupportedLocales) > 0 && !slices.Contains(o.SupportedLocales, o.DefaultLocale) {
		return errors.Wrapf(ErrInvalidOption, "default locale %s is not one of the supported locales", o.DefaultLocale)
	}
	return nil
}
