package news

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNotObject is returned by DecodeNewsItem for anything but a JSON object.
var ErrNotObject = errors.New("news item is not an object")

// NewsID uniquely identifies a news item within one response. The backend
// sends it as a string or a number.
type NewsID string

// UnmarshalJSON accepts both JSON strings and numbers.
func (id *NewsID) UnmarshalJSON(b []byte) error {
	*id = NewsID(scalarText(b))
	return nil
}

// NewsItem represents one article.
type NewsItem struct {
	ID           NewsID `json:"id"`
	Source       string `json:"source"`
	UpdatedTime  string `json:"updated_time"`
	CanonicalURL string `json:"canonical_url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

// DecodeNewsItem decodes one article leniently. Scalar fields of any JSON
// type become text; objects, arrays and null leave the field empty.
func DecodeNewsItem(raw json.RawMessage) (NewsItem, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return NewsItem{}, ErrNotObject
	}
	if fields == nil {
		return NewsItem{}, ErrNotObject
	}
	return NewsItem{
		ID:           NewsID(scalarText(fields["id"])),
		Source:       scalarText(fields["source"]),
		UpdatedTime:  scalarText(fields["updated_time"]),
		CanonicalURL: scalarText(fields["canonical_url"]),
		Title:        scalarText(fields["title"]),
		Description:  scalarText(fields["description"]),
	}, nil
}

// scalarText renders a JSON string, number or boolean as text.
func scalarText(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}
