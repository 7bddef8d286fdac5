package job

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesInputDecoding(t *testing.T) {
	var payload struct {
		Notes *NotesInput `json:"notes"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"notes":"called client"}`), &payload))
	require.NotNil(t, payload.Notes.Text)
	assert.Equal(t, "called client", *payload.Notes.Text)

	payload.Notes = nil
	require.NoError(t, json.Unmarshal([]byte(`{"notes":[{"text":"a","timestamp":"2025-01-01T00:00:00Z"}]}`), &payload))
	assert.Len(t, payload.Notes.List, 1)

	assert.Error(t, json.Unmarshal([]byte(`{"notes":42}`), &payload))
}

func TestNotesInputApply(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	existing := []Note{{Text: "first", Timestamp: "2025-06-01T08:00:00Z"}}

	text := "second"
	appended, changed := (&NotesInput{Text: &text}).Apply(existing, now, true)
	assert.True(t, changed)
	require.Len(t, appended, 2)
	assert.Equal(t, Note{Text: "second", Timestamp: "2025-06-02T12:00:00Z"}, appended[1])

	created, _ := (&NotesInput{Text: &text}).Apply(existing, now, false)
	assert.Len(t, created, 1)

	replaced, changed := (&NotesInput{List: []Note{}}).Apply(existing, now, true)
	assert.True(t, changed)
	assert.Empty(t, replaced)

	blank := "   "
	same, changed := (&NotesInput{Text: &blank}).Apply(existing, now, true)
	assert.False(t, changed)
	assert.Equal(t, existing, same)
}

func TestWeekInputDecoding(t *testing.T) {
	type body struct {
		Week WeekInput `json:"week"`
	}

	var number body
	require.NoError(t, json.Unmarshal([]byte(`{"week":7}`), &number))
	assert.True(t, number.Week.Set)
	assert.Equal(t, "7", number.Week.Raw)

	var text body
	require.NoError(t, json.Unmarshal([]byte(`{"week":"2025/7"}`), &text))
	assert.Equal(t, "2025/7", text.Week.Raw)

	var null body
	require.NoError(t, json.Unmarshal([]byte(`{"week":null}`), &null))
	assert.True(t, null.Week.Set)
	assert.True(t, null.Week.Null)

	var absent body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Week.Set)
}

func TestWeekInputCanonical(t *testing.T) {
	now := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-07", *WeekInput{Set: true, Raw: "7"}.Canonical(now))
	assert.Equal(t, "2024-52", *WeekInput{Set: true, Raw: "2024/52"}.Canonical(now))
	assert.Nil(t, WeekInput{Set: true, Raw: "soon"}.Canonical(now))
	assert.Nil(t, WeekInput{Set: true, Null: true}.Canonical(now))
	assert.Nil(t, WeekInput{}.Canonical(now))
}
