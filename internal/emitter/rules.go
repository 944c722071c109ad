package emitter

import (
	"fmt"
	"strings"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
)

// serializeRules renders the rules as a rule builder chain, e.g. (Rule) => Rule.required().max(80)
func serializeRules(rules []sanity.Rule) string {
	calls := make([]string, 0, len(rules))
	for _, r := range rules {
		if call := serializeRule(r); call != "" {
			calls = append(calls, call)
		}
	}
	if len(calls) == 0 {
		return ""
	}
	return "(Rule) => Rule." + strings.Join(calls, ".")
}

var plain = &jsWriter{compact: true}

func serializeRule(r sanity.Rule) string {
	switch r.Flag {
	case sanity.FlagPresence:
		if r.Constraint == sanity.Required {
			return "required()"
		}
		return "optional()"
	case sanity.FlagInteger:
		return "integer()"
	case sanity.FlagUnique:
		return "unique()"
	case sanity.FlagMin, sanity.FlagMax:
		return fmt.Sprintf("%s(%s)", r.Flag, plain.value(r.Constraint))
	case sanity.FlagValid:
		return fmt.Sprintf("valid(%s)", plain.value(r.Constraint))
	case sanity.FlagRegex:
		if c, ok := r.Constraint.(sanity.RegexConstraint); ok {
			return fmt.Sprintf("regex(%s)", regexLiteral(c.Pattern, c.Flags))
		}
	case sanity.FlagURI:
		if c, ok := r.Constraint.(sanity.URIConstraint); ok {
			schemes := make([]string, 0, len(c.Scheme))
			for _, s := range c.Scheme {
				schemes = append(schemes, regexLiteral(s, ""))
			}
			return fmt.Sprintf("uri({allowCredentials: %t, allowRelative: %t, relativeOnly: %t, scheme: [%s]})",
				c.AllowCredentials, c.AllowRelative, c.RelativeOnly, strings.Join(schemes, ", "))
		}
	case sanity.FlagMarks:
		if marks, ok := r.Constraint.([]string); ok {
			return marksRule(marks)
		}
	}
	return ""
}

// marksRule allows decorators from the list plus any annotation mark defined on the block.
func marksRule(marks []string) string {
	allowed := plain.value(marks)
	return fmt.Sprintf("custom((blocks) => (blocks ?? []).every((block) => (block.children ?? []).every((child) => "+
		"(child.marks ?? []).every((mark) => %s.includes(mark) || (block.markDefs ?? []).some((def) => def._key === mark)))) "+
		"|| %s)", allowed, quote("Only these marks are allowed: "+strings.Join(marks, ", ")))
}

// regexLiteral renders a regular expression literal, escaping unescaped slashes.
func regexLiteral(pattern string, flags string) string {
	var sb strings.Builder
	sb.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('/')
	sb.WriteString(flags)
	return sb.String()
}
