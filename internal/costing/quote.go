package costing

import (
	"fmt"
	"strings"
	"time"
)

// QuoteRule maps clients whose display name contains Match to a quote
// prefix. Offset is added to the week number before formatting.
type QuoteRule struct {
	Match  string `mapstructure:"match" json:"match"`
	Prefix string `mapstructure:"prefix" json:"prefix"`
	Offset int    `mapstructure:"offset" json:"offset"`
}

// ResolveQuoteRule returns the first rule whose Match is contained in
// clientName, compared case-insensitively.
func ResolveQuoteRule(rules []QuoteRule, clientName string) (QuoteRule, bool) {
	name := strings.ToLower(strings.TrimSpace(clientName))
	if name == "" {
		return QuoteRule{}, false
	}
	for _, rule := range rules {
		match := strings.ToLower(strings.TrimSpace(rule.Match))
		if match == "" || strings.TrimSpace(rule.Prefix) == "" {
			continue
		}
		if strings.Contains(name, match) {
			return rule, true
		}
	}
	return QuoteRule{}, false
}

// FormatQuote renders "{PREFIX}-Q{offset+week:05d}".
func FormatQuote(rule QuoteRule, week int) string {
	return fmt.Sprintf("%s-Q%05d", strings.ToUpper(strings.TrimSpace(rule.Prefix)), rule.Offset+week)
}

// QuoteNumber derives the quote number for a client and week. Orders that
// share a client prefix and week always get the same number.
func QuoteNumber(rules []QuoteRule, clientName string, week string, now time.Time) (string, bool) {
	rule, ok := ResolveQuoteRule(rules, clientName)
	if !ok {
		return "", false
	}
	_, w, ok := ParseWeek(week, now)
	if !ok {
		return "", false
	}
	return FormatQuote(rule, w), true
}
