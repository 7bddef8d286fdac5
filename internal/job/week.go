package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/costing"
)

var ErrInvalidWeek = errors.New("invalid_week")

// WeekInput is a week as sent by clients: a string, a number or null. Use it
// as a value field so an explicit null is observed. Set reports whether the
// key was present at all; Raw holds the text form for canonicalization.
type WeekInput struct {
	Set  bool
	Null bool
	Raw  string
}

func (w *WeekInput) UnmarshalJSON(data []byte) error {
	w.Set = true
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		w.Null = true
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidWeek
		}
		w.Raw = s
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return ErrInvalidWeek
	}
	w.Raw = strconv.FormatFloat(num, 'f', -1, 64)
	return nil
}

// Canonical returns the YYYY-WW form, or nil when the week is null or cannot
// be parsed. An unparseable week clears the field rather than failing.
func (w WeekInput) Canonical(now time.Time) *string {
	if !w.Set || w.Null {
		return nil
	}
	week, ok := costing.CanonicalizeWeek(w.Raw, now)
	if !ok {
		return nil
	}
	return &week
}
