package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Item is a single news entry as returned by the item endpoint.
// Values are immutable once fetched.
type Item struct {
	ID          int
	Title       string
	URL         string // empty when the item has no link (Ask HN, jobs)
	Text        string
	Author      string
	Score       int
	Descendants int
	CreatedAt   time.Time
	Kids        []int
	Kind        string
}

// HasURL reports whether the item links to an external page.
func (it Item) HasURL() bool {
	return it.URL != ""
}

// wireItem mirrors the JSON payload. Pointers distinguish absent fields
// from zero values for the required ones.
type wireItem struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	Kind        *string `json:"type"`
	Time        *int64  `json:"time"`
	URL         string  `json:"url"`
	Text        string  `json:"text"`
	By          string  `json:"by"`
	Score       int     `json:"score"`
	Descendants int     `json:"descendants"`
	Kids        []int   `json:"kids"`
}

// UnmarshalJSON decodes an item, failing when id, title, type or time is missing.
func (it *Item) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrItemNotFound
	}

	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var missing []string
	if w.ID == nil {
		missing = append(missing, "id")
	}
	if w.Title == nil {
		missing = append(missing, "title")
	}
	if w.Kind == nil {
		missing = append(missing, "type")
	}
	if w.Time == nil {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("item missing required fields %v", missing)
	}

	kids := w.Kids
	if kids == nil {
		kids = []int{}
	}

	*it = Item{
		ID:          *w.ID,
		Title:       *w.Title,
		URL:         w.URL,
		Text:        w.Text,
		Author:      w.By,
		Score:       w.Score,
		Descendants: w.Descendants,
		CreatedAt:   time.Unix(*w.Time, 0).UTC(),
		Kids:        kids,
		Kind:        *w.Kind,
	}
	return nil
}

// decodeItem parses a raw item body. A JSON null body yields ErrItemNotFound.
func decodeItem(data []byte) (Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Item{}, fmt.Errorf("decoding item: empty body")
	}
	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("decoding item: %w", err)
	}
	return it, nil
}
