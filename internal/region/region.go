// Package region localizes text for an Indian region: place names are
// swapped for regional equivalents, and currency/measurement expressions
// are converted with fixed multipliers. An unknown region is an identity
// transform, not an error.
package region

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ConversionRule converts a numeric expression matched by Pattern. The
// pattern's first capture group is the numeric value; the rendered result
// is Format with %s replaced by value × Multiplier. Rules are plain data
// interpreted by one generic converter, so rule tables carry no code.
type ConversionRule struct {
	Pattern    *regexp.Regexp
	Multiplier float64
	Format     string
}

// placeRule is a pre-compiled whole-word, case-insensitive place rename.
type placeRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// RuleSet holds every adaptation rule for one region. Rules are applied
// in order: places, then currency, then measurements.
type RuleSet struct {
	places       []placeRule
	currency     []ConversionRule
	measurements []ConversionRule
}

// Known reports whether adaptation rules exist for the region.
func Known(region string) bool {
	_, ok := ruleSets[strings.ToLower(region)]
	return ok
}

// Names returns the regions that have adaptation rules.
func Names() []string {
	return regionNames
}

// Adapt applies the region's rules to text. Text for an unconfigured
// region passes through unchanged.
func Adapt(text, region string) string {
	rules, ok := ruleSets[strings.ToLower(region)]
	if !ok {
		return text
	}

	for _, p := range rules.places {
		text = p.pattern.ReplaceAllString(text, p.replacement)
	}
	text = applyConversions(text, rules.currency)
	text = applyConversions(text, rules.measurements)
	return text
}

func applyConversions(text string, rules []ConversionRule) string {
	for _, rule := range rules {
		text = rule.Pattern.ReplaceAllStringFunc(text, func(match string) string {
			groups := rule.Pattern.FindStringSubmatch(match)
			if len(groups) < 2 {
				return match
			}
			value, err := strconv.ParseFloat(groups[1], 64)
			if err != nil {
				return match
			}
			return fmt.Sprintf(rule.Format, formatNumber(value*rule.Multiplier))
		})
	}
	return text
}

// formatNumber renders a converted value without trailing zeros: 800
// renders as "800", 4.8 as "4.8".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func placeRules(places [][2]string) []placeRule {
	rules := make([]placeRule, 0, len(places))
	for _, p := range places {
		rules = append(rules, placeRule{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`),
			replacement: p[1],
		})
	}
	return rules
}
