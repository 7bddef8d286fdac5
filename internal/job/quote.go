package job

import (
	"time"

	"github.com/fiberafrica/missioncontrol/internal/costing"
)

// Quote derives an order's quote number from the client display name and the
// stored week. It returns nil when no rule matches or the week is unset, and
// the matched prefix otherwise.
func Quote(rules []costing.QuoteRule, clientName string, week *string, now time.Time) (*string, string) {
	if week == nil {
		return nil, ""
	}
	rule, ok := costing.ResolveQuoteRule(rules, clientName)
	if !ok {
		return nil, ""
	}
	quote, ok := costing.QuoteNumber([]costing.QuoteRule{rule}, clientName, *week, now)
	if !ok {
		return nil, ""
	}
	return &quote, rule.Prefix
}
