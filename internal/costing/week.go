package costing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearWeekPattern = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)

// ParseWeek reads a week value as either "YYYY-W", "YYYY/W" or a bare week
// number. Bare numbers are read up to the first non-digit and belong to the
// year of now. The week number is not range checked.
func ParseWeek(raw string, now time.Time) (year int, week int, ok bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, 0, false
	}

	if m := yearWeekPattern.FindStringSubmatch(value); m != nil {
		year, _ = strconv.Atoi(m[1])
		week, _ = strconv.Atoi(m[2])
		return year, week, true
	}

	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, 0, false
	}
	week, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, 0, false
	}
	return now.Year(), week, true
}

// CanonicalizeWeek returns the "YYYY-WW" form of raw. The second result is
// false when raw is empty or unparseable, which callers store as null.
func CanonicalizeWeek(raw string, now time.Time) (string, bool) {
	year, week, ok := ParseWeek(raw, now)
	if !ok {
		return "", false
	}
	return FormatWeek(year, week), true
}

// FormatWeek renders a year and week as "YYYY-WW".
func FormatWeek(year, week int) string {
	return fmt.Sprintf("%04d-%02d", year, week)
}
