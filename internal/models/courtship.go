package models

import "encoding/json"

// CourtshipType is the kind of relationship between two users. The -req
// variants are pending requests; the rest are accepted relationships.
type CourtshipType string

const (
	CourtshipFriend  CourtshipType = "friend"
	CourtshipCoach   CourtshipType = "coach"
	CourtshipStudent CourtshipType = "student"

	CourtshipFriendRequest  CourtshipType = "friend-req"
	CourtshipCoachRequest   CourtshipType = "coach-req"
	CourtshipStudentRequest CourtshipType = "student-req"
)

// Pending reports whether the type is a not-yet-accepted request.
func (t CourtshipType) Pending() bool {
	switch t {
	case CourtshipFriendRequest, CourtshipCoachRequest, CourtshipStudentRequest:
		return true
	}
	return false
}

// Role returns the accepted relationship a pending request would become.
// Accepted types return themselves.
func (t CourtshipType) Role() CourtshipType {
	switch t {
	case CourtshipFriendRequest:
		return CourtshipFriend
	case CourtshipCoachRequest:
		return CourtshipCoach
	case CourtshipStudentRequest:
		return CourtshipStudent
	}
	return t
}

// RequestType returns the pending request type for an accepted role.
func (t CourtshipType) RequestType() CourtshipType {
	switch t {
	case CourtshipFriend:
		return CourtshipFriendRequest
	case CourtshipCoach:
		return CourtshipCoachRequest
	case CourtshipStudent:
		return CourtshipStudentRequest
	}
	return t
}

// Direction marks which side of a pending request the current user is on.
type Direction string

const (
	DirectionIn  Direction = "in"  // someone sent the request to us
	DirectionOut Direction = "out" // we sent the request
)

// Courtship is a typed relationship between the current user and another
// user. For pending requests Dir is set; for accepted courtships it is empty.
// A pending request and an accepted courtship are mutually exclusive per
// user pair; the server enforces this, the client only reflects it.
type Courtship struct {
	ID   int           `json:"id"`
	Type CourtshipType `json:"type"`
	Dir  Direction     `json:"dir,omitempty"`
	User *User         `json:"user,omitempty"` // the other party
}

func (c *Courtship) UnmarshalJSON(data []byte) error {
	type alias Courtship
	aux := alias{ID: UnknownID}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Courtship(aux)
	return nil
}
