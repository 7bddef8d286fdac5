package server

import (
	"strconv"
	"strings"
	"time"
)

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseExpiry reads an expiry in seconds. Zero means the service default.
func parseExpiry(value string) (time.Duration, error) {
	seconds, err := parseOptionalInt(value)
	if err != nil || seconds == nil {
		return 0, err
	}
	if *seconds < 0 {
		return 0, strconv.ErrRange
	}
	return time.Duration(*seconds) * time.Second, nil
}
