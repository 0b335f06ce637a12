package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLenientDecode(t *testing.T) {
	// A partial body decodes with sentinel defaults instead of failing.
	var user User
	err := json.Unmarshal([]byte(`{"username":"serena"}`), &user)
	require.NoError(t, err)
	assert.Equal(t, UnknownID, user.ID)
	assert.Equal(t, "serena", user.Username)
	assert.Equal(t, "", user.DisplayName)
	assert.Nil(t, user.Courtship)
}

func TestUserDecodeWithCourtship(t *testing.T) {
	raw := `{"id":7,"username":"rafa","courtship":{"id":3,"type":"coach-req","dir":"out"}}`
	var user User
	require.NoError(t, json.Unmarshal([]byte(raw), &user))
	require.NotNil(t, user.Courtship)
	assert.Equal(t, CourtshipCoachRequest, user.Courtship.Type)
	assert.Equal(t, DirectionOut, user.Courtship.Dir)
	assert.True(t, user.Courtship.Type.Pending())
	assert.Equal(t, CourtshipCoach, user.Courtship.Type.Role())
}

func TestTimestampStrict(t *testing.T) {
	var upload Upload
	err := json.Unmarshal([]byte(`{"id":1,"created":"yesterday"}`), &upload)
	require.Error(t, err, "a malformed timestamp must fail the decode")

	err = json.Unmarshal([]byte(`{"id":1,"created":"2023-04-02T15:04:05.123456"}`), &upload)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 4, 2, 15, 4, 5, 123456000, time.UTC), upload.Created.Time)

	// No fractional part is still within the fixed layout.
	err = json.Unmarshal([]byte(`{"id":1,"created":"2023-04-02T15:04:05"}`), &upload)
	require.NoError(t, err)
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(ts)
	require.NoError(t, err)

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, ts.Equal(back.Time))
}

func TestUploadDecodeDefaults(t *testing.T) {
	var upload Upload
	require.NoError(t, json.Unmarshal([]byte(`{"display_title":"Serve practice"}`), &upload))
	assert.Equal(t, UnknownID, upload.ID)
	assert.Equal(t, UnknownID, upload.BucketID)
	assert.False(t, upload.StreamReady)
}

func TestParseVisibilityDefault(t *testing.T) {
	for _, tier := range []string{"private", "coaches-only", "friends-only", "friends-and-coaches", "public"} {
		got, err := ParseVisibilityDefault(tier)
		require.NoError(t, err)
		assert.Equal(t, VisibilityDefault(tier), got)
	}
	_, err := ParseVisibilityDefault("everyone")
	assert.Error(t, err)
}

func TestCommentAnchorDecode(t *testing.T) {
	var comment Comment
	raw := `{"id":5,"upload_id":2,"text":"$42$nice follow-through"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &comment))
	assert.Equal(t, 42, comment.AnchorSeconds)
	assert.Equal(t, "nice follow-through", comment.Text)
}

func TestCommentNoAnchor(t *testing.T) {
	var comment Comment
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"upload_id":2,"text":"great rally"}`), &comment))
	assert.Equal(t, NoAnchor, comment.AnchorSeconds)
	assert.Equal(t, "great rally", comment.Text)
}

func TestCommentMalformedAnchorLeftAlone(t *testing.T) {
	cases := []string{"$notanumber$hello", "$12 half marker", "$-3$negative", "$"}
	for _, text := range cases {
		var comment Comment
		raw, _ := json.Marshal(map[string]any{"id": 1, "upload_id": 1, "text": text})
		require.NoError(t, json.Unmarshal(raw, &comment))
		assert.Equal(t, NoAnchor, comment.AnchorSeconds, "text %q", text)
		assert.Equal(t, text, comment.Text, "text %q", text)
	}
}

func TestCommentAnchorRoundTrip(t *testing.T) {
	comment := Comment{ID: 1, UploadID: 2, Text: "watch the toss", AnchorSeconds: 17}
	data, err := json.Marshal(comment)
	require.NoError(t, err)

	var back Comment
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 17, back.AnchorSeconds)
	assert.Equal(t, "watch the toss", back.Text)
}

func TestJoinAnchor(t *testing.T) {
	assert.Equal(t, "$30$good shot", JoinAnchor(30, "good shot"))
	assert.Equal(t, "good shot", JoinAnchor(NoAnchor, "good shot"))
}

func TestCommentAnchorZeroValue(t *testing.T) {
	// Zero is the start of the video, a real anchor; unanchored needs the
	// explicit sentinel.
	data, err := json.Marshal(Comment{UploadID: 1, Text: "nice toss"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"$0$nice toss"`)

	data, err = json.Marshal(Comment{UploadID: 1, Text: "nice toss", AnchorSeconds: NoAnchor})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nice toss"`)
	assert.NotContains(t, string(data), "$")
}

func TestCourtshipTypeRequestType(t *testing.T) {
	assert.Equal(t, CourtshipFriendRequest, CourtshipFriend.RequestType())
	assert.Equal(t, CourtshipCoachRequest, CourtshipCoach.RequestType())
	assert.Equal(t, CourtshipStudentRequest, CourtshipStudent.RequestType())
	assert.Equal(t, CourtshipFriendRequest, CourtshipFriendRequest.RequestType())
}
