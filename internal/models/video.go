package models

import (
	"encoding/json"
	"fmt"
)

// VideoSource is one playable URL of an episode
type VideoSource struct {
	URL    string `json:"url"`    // Final URL after following redirects
	Origin string `json:"origin"` // "file" value listed by the source lookup endpoint
}

// SourceListResponse is the JSON document returned by the source lookup endpoint.
// Source is kept raw so that an absent, null, or non-array value can be told
// apart from a real list.
type SourceListResponse struct {
	Source json.RawMessage `json:"source"`
}

// SourceEntry is one element of the "source" array
type SourceEntry struct {
	File  *string `json:"file"`
	Label string  `json:"label,omitempty"`
	Type  string  `json:"type,omitempty"`
}

// ErrSourceEntry reports an element of the "source" array that has no usable file.
type ErrSourceEntry struct {
	Index int
	Raw   string
}

func (e *ErrSourceEntry) Error() string {
	return fmt.Sprintf("source entry %d has no string \"file\" field: %s", e.Index, e.Raw)
}

// Files returns the "file" value of every source entry in document order.
// A missing "source" field, null, or any non-array value yields an empty list.
func (r SourceListResponse) Files() ([]string, error) {
	if len(r.Source) == 0 {
		return []string{}, nil
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal(r.Source, &rawEntries); err != nil || rawEntries == nil {
		return []string{}, nil
	}

	files := make([]string, 0, len(rawEntries))
	for i, raw := range rawEntries {
		var entry SourceEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.File == nil {
			return nil, &ErrSourceEntry{Index: i, Raw: string(raw)}
		}
		files = append(files, *entry.File)
	}
	return files, nil
}
