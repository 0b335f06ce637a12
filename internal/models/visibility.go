package models

import "fmt"

// VisibilityDefault is the base access tier of an upload.
type VisibilityDefault string

const (
	VisibilityPrivate           VisibilityDefault = "private"
	VisibilityCoachesOnly       VisibilityDefault = "coaches-only"
	VisibilityFriendsOnly       VisibilityDefault = "friends-only"
	VisibilityFriendsAndCoaches VisibilityDefault = "friends-and-coaches"
	VisibilityPublic            VisibilityDefault = "public"
)

// ParseVisibilityDefault validates a user-supplied tier name.
func ParseVisibilityDefault(s string) (VisibilityDefault, error) {
	switch VisibilityDefault(s) {
	case VisibilityPrivate, VisibilityCoachesOnly, VisibilityFriendsOnly,
		VisibilityFriendsAndCoaches, VisibilityPublic:
		return VisibilityDefault(s), nil
	}
	return "", fmt.Errorf("unknown visibility %q (want private, coaches-only, friends-only, friends-and-coaches or public)", s)
}

// Visibility is the access-control descriptor on an Upload: a default tier
// plus an explicit allow-list of extra viewer user IDs. The server is the
// authority on what a viewer may actually see; the client only carries the
// descriptor.
type Visibility struct {
	Default        VisibilityDefault `json:"default"`
	AlsoSharedWith []int             `json:"also_shared_with"`
}
