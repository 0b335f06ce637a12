package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NoAnchor is the AnchorSeconds value for a comment that is not pinned to a
// video position.
const NoAnchor = -1

// Comment is an append-only remark on an upload. AnchorSeconds pins the
// comment to a position in the video; the backend still speaks the legacy
// "$seconds$text" convention, which is translated here and nowhere else.
//
// Zero is a valid anchor (the start of the video), so a zero-value Comment
// is anchored at 0s. Construct unanchored comments with
// AnchorSeconds: NoAnchor.
type Comment struct {
	ID            int       `json:"-"`
	Created       Timestamp `json:"-"`
	Author        User      `json:"-"`
	UploadID      int       `json:"-"`
	Text          string    `json:"-"`
	AnchorSeconds int       `json:"-"`
}

type commentWire struct {
	ID       int       `json:"id"`
	Created  Timestamp `json:"created"`
	Author   User      `json:"author"`
	UploadID int       `json:"upload_id"`
	Text     string    `json:"text"`
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	aux := commentWire{ID: UnknownID, UploadID: UnknownID}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	anchor, text := splitAnchor(aux.Text)
	*c = Comment{
		ID:            aux.ID,
		Created:       aux.Created,
		Author:        aux.Author,
		UploadID:      aux.UploadID,
		Text:          text,
		AnchorSeconds: anchor,
	}
	return nil
}

func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(commentWire{
		ID:       c.ID,
		Created:  c.Created,
		Author:   c.Author,
		UploadID: c.UploadID,
		Text:     JoinAnchor(c.AnchorSeconds, c.Text),
	})
}

// JoinAnchor renders the wire text for a comment body: "$seconds$text" when
// anchored, the plain text otherwise.
func JoinAnchor(anchorSeconds int, text string) string {
	if anchorSeconds < 0 {
		return text
	}
	return "$" + strconv.Itoa(anchorSeconds) + "$" + text
}

// splitAnchor strips a leading "$seconds$" marker. Text that merely starts
// with a dollar sign but carries no parseable marker is left untouched.
func splitAnchor(s string) (anchorSeconds int, text string) {
	if !strings.HasPrefix(s, "$") {
		return NoAnchor, s
	}
	end := strings.Index(s[1:], "$")
	if end < 0 {
		return NoAnchor, s
	}
	secs, err := strconv.Atoi(s[1 : 1+end])
	if err != nil || secs < 0 {
		return NoAnchor, s
	}
	return secs, s[end+2:]
}
