package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Note is one timestamped remark on a job.
type Note struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Notes is the JSON column type for notes.
type Notes = datatypes.JSONSlice[Note]

var ErrInvalidNotes = errors.New("invalid_notes")

// NotesInput accepts either a plain string or a full array of notes.
type NotesInput struct {
	Text *string
	List []Note
}

func (n *NotesInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return ErrInvalidNotes
		}
		n.Text = &text
		return nil
	case '[':
		var list []Note
		if err := json.Unmarshal(data, &list); err != nil {
			return ErrInvalidNotes
		}
		if list == nil {
			list = []Note{}
		}
		n.List = list
		return nil
	default:
		return ErrInvalidNotes
	}
}

// Apply merges the input into existing notes. A string becomes a new note
// stamped with now; on update it is appended, on create it starts the list.
// An array always replaces what is there. Blank strings are ignored.
func (n *NotesInput) Apply(existing []Note, now time.Time, appendText bool) ([]Note, bool) {
	if n == nil {
		return existing, false
	}
	if n.List != nil {
		return n.List, true
	}
	if n.Text == nil {
		return existing, false
	}
	text := strings.TrimSpace(*n.Text)
	if text == "" {
		return existing, false
	}
	note := Note{Text: text, Timestamp: now.UTC().Format(time.RFC3339)}
	if !appendText {
		return []Note{note}, true
	}
	out := make([]Note, 0, len(existing)+1)
	out = append(out, existing...)
	return append(out, note), true
}
