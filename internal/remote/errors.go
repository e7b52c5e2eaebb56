package remote

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when the item endpoint answers with a null body,
// which is how the API reports deleted or unknown ids.
var ErrItemNotFound = errors.New("item not found")

// RemoteError reports a network, HTTP or decode failure talking to the API.
type RemoteError struct {
	Op  string // "topstories" or "item"
	ID  int    // item id for Op == "item"
	Err error
}

func (e *RemoteError) Error() string {
	if e.Op == opItem {
		return fmt.Sprintf("remote %s %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// RangeError reports a page request that starts past the known ranking.
type RangeError struct {
	From int
	Len  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range start %d beyond ranking of %d items", e.From, e.Len)
}

const (
	opTopStories = "topstories"
	opItem       = "item"
)
