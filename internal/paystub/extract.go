package paystub

import (
	"regexp"
	"strings"
)

// Result carries whatever the extraction rules managed to find. Empty
// strings mark fields the user must supply manually.
type Result struct {
	BeginDate  string
	EndDate    string
	TotalHours string
}

// dateToken matches MM/DD/YYYY or MM/DD/YY with 1-2 digit month and day.
// This token shape is the one external contract worth keeping bit-exact.
const dateToken = `(\d{1,2}/\d{1,2}/(?:\d{4}|\d{2}))`

const decimalToken = `(\d+(?:\.\d+)?)`

var (
	beginDateRe = regexp.MustCompile(`(?i)\b(?:begin|start)(?:ning)?\s*(?:date)?\s*[:\-]?\s*` + dateToken)
	endDateRe   = regexp.MustCompile(`(?i)\b(?:end|stop)(?:ing)?\s*(?:date)?\s*[:\-]?\s*` + dateToken)
	payPeriodRe = regexp.MustCompile(`(?i)\bpay\s*period\s*[:\-]?\s*` + dateToken + `\s*(?:-|to|through)\s*` + dateToken)

	hoursSameLineRe = regexp.MustCompile(`(?i)\btotal[ ]+hours(?:[ ]+worked)?[ ]*[:\-]?[ ]*` + decimalToken)
	hoursNearbyRe   = regexp.MustCompile(`(?i)\btotal\s+hours(?:\s+worked)?\b[\s\S]{0,80}?` + decimalToken)
	totalRowRe      = regexp.MustCompile(`(?i)\bTOTAL\b[\s\S]{0,80}?` + decimalToken)
)

// dateRule finds one pay-period bound in normalized text.
type dateRule struct {
	name string
	find func(text string) string
}

// hoursRule finds the claimed total hours in normalized text.
type hoursRule struct {
	name string
	find func(text string) string
}

var beginRules = []dateRule{
	{name: "begin-label", find: firstGroup(beginDateRe, 1)},
	{name: "pay-period-start", find: firstGroup(payPeriodRe, 1)},
}

var endRules = []dateRule{
	{name: "end-label", find: firstGroup(endDateRe, 1)},
	{name: "pay-period-end", find: firstGroup(payPeriodRe, 2)},
}

var hoursRules = []hoursRule{
	{name: "total-hours-same-line", find: firstGroup(hoursSameLineRe, 1)},
	{name: "total-hours-nearby", find: firstGroup(hoursNearbyRe, 1)},
	{name: "total-row", find: firstGroup(totalRowRe, 1)},
}

func firstGroup(re *regexp.Regexp, group int) func(string) string {
	return func(text string) string {
		match := re.FindStringSubmatch(text)
		if match == nil || group >= len(match) {
			return ""
		}
		return match[group]
	}
}

// Extract runs every rule chain over the text and returns whatever matched.
// It never fails; a fully empty Result is a valid outcome.
func Extract(text string) Result {
	normalized := NormalizeText(text)

	var result Result
	for _, rule := range beginRules {
		if value := rule.find(normalized); value != "" {
			result.BeginDate = value
			break
		}
	}
	for _, rule := range endRules {
		if value := rule.find(normalized); value != "" {
			result.EndDate = value
			break
		}
	}
	for _, rule := range hoursRules {
		if value := rule.find(normalized); value != "" {
			result.TotalHours = value
			break
		}
	}
	return result
}

var (
	exoticDashRe = regexp.MustCompile("[\u2010\u2011\u2012\u2013\u2014\u2015\u2212]")
	whitespaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
	nbspReplacer = strings.NewReplacer("\u00a0", " ", "\u2007", " ", "\u202f", " ")
	crlfReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// NormalizeText flattens the glyph and whitespace quirks PDF text extraction
// produces: non-breaking spaces become spaces, unicode dashes become ASCII
// hyphens, and runs of spaces collapse. Line breaks survive so the nearby
// rules can span tabular layouts.
func NormalizeText(text string) string {
	text = crlfReplacer.Replace(text)
	text = nbspReplacer.Replace(text)
	text = exoticDashRe.ReplaceAllString(text, "-")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
