package mapper

import (
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
)

// ExtractValidationRules converts the constraints of the source field into validation rules.
// The rules keep the order of the source validations. Validations without a counterpart are ignored.
func ExtractValidationRules(field contentful.Field) []sanity.Rule {
	var rules []sanity.Rule
	if field.Required {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagPresence, Constraint: sanity.Required})
	}
	if field.Type == contentful.Integer {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagInteger})
	}
	for _, v := range field.Validations {
		rules = append(rules, validationToRules(v)...)
	}
	return rules
}

func validationToRules(v contentful.Validation) []sanity.Rule {
	var rules []sanity.Rule
	if v.Unique {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagUnique})
	}
	if v.Size != nil {
		rules = append(rules, rangeRules(v.Size)...)
	}
	if v.Range != nil {
		rules = append(rules, rangeRules(v.Range)...)
	}
	if v.DateRange != nil {
		if v.DateRange.Min != "" {
			rules = append(rules, sanity.Rule{Flag: sanity.FlagMin, Constraint: v.DateRange.Min})
		}
		if v.DateRange.Max != "" {
			rules = append(rules, sanity.Rule{Flag: sanity.FlagMax, Constraint: v.DateRange.Max})
		}
	}
	if v.Regexp != nil && v.Regexp.Pattern != "" {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagRegex, Constraint: sanity.RegexConstraint{Pattern: v.Regexp.Pattern, Flags: v.Regexp.Flags}})
	}
	if len(v.In) > 0 {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagValid, Constraint: append([]any(nil), v.In...)})
	}
	if v.EnabledMarks != nil {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagMarks, Constraint: decoratorValues(v.EnabledMarks)})
	}
	return rules
}

func rangeRules(r *contentful.Range) []sanity.Rule {
	var rules []sanity.Rule
	if r.Min != nil {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagMin, Constraint: *r.Min})
	}
	if r.Max != nil {
		rules = append(rules, sanity.Rule{Flag: sanity.FlagMax, Constraint: *r.Max})
	}
	return rules
}

func withoutFlag(rules []sanity.Rule, flag sanity.RuleFlag) []sanity.Rule {
	res := make([]sanity.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Flag != flag {
			res = append(res, r)
		}
	}
	return res
}

// URIRule is appended to the rules of url fields.
var URIRule = sanity.Rule{
	Flag: sanity.FlagURI,
	Constraint: sanity.URIConstraint{
		AllowCredentials: true,
		AllowRelative:    true,
		RelativeOnly:     false,
		Scheme:           []string{"^http", "^https"},
	},
}
