// Package mockapi is an in-memory stand-in for the production API. The
// package tests and the e2e test run the real client against it, and
// cmd/mockapi serves it standalone so frontends can develop offline.
package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

type account struct {
	ID             int
	Username       string
	DisplayName    string
	Biography      string
	Email          string
	Password       string
	EmailConfirmed bool
}

type bucketRec struct {
	ID           int
	OwnerID      int
	Name         string
	LastModified time.Time
}

type uploadRec struct {
	ID          int
	OwnerID     int
	Created     time.Time
	Title       string
	Filename    string
	BucketID    int
	Visibility  models.Visibility
	Key         string
	Posted      bool
	StreamReady bool
}

type commentRec struct {
	ID       int
	UploadID int
	AuthorID int
	Created  time.Time
	Text     string // wire form, anchor prefix included
}

// requestRec is a pending courtship request; Type is always a -req variant,
// expressed from the requester's side.
type requestRec struct {
	ID     int
	FromID int
	ToID   int
	Type   models.CourtshipType
}

// courtshipRec is an accepted relationship. Role is what the target is to
// the requester (their coach, their student, their friend).
type courtshipRec struct {
	ID          int
	RequesterID int
	TargetID    int
	Role        models.CourtshipType
}

// store holds all fake state behind one mutex, the same shape the real
// backend's tables take.
type store struct {
	mu sync.RWMutex

	nextID     int
	accounts   map[int]*account
	sessions   map[string]int // token -> account id
	buckets    map[int]*bucketRec
	uploads    map[int]*uploadRec
	comments   map[int]*commentRec
	requests   map[int]*requestRec
	courtships map[int]*courtshipRec
	blobs      map[string][]byte // storage key -> posted bytes
}

func newStore() *store {
	return &store{
		accounts:   make(map[int]*account),
		sessions:   make(map[string]int),
		buckets:    make(map[int]*bucketRec),
		uploads:    make(map[int]*uploadRec),
		comments:   make(map[int]*commentRec),
		requests:   make(map[int]*requestRec),
		courtships: make(map[int]*courtshipRec),
		blobs:      make(map[string][]byte),
	}
}

// nextIDLocked hands out identifiers; caller holds the write lock.
func (s *store) nextIDLocked() int {
	s.nextID++
	return s.nextID
}

func (s *store) newSessionLocked(accountID int) string {
	token := uuid.NewString()
	s.sessions[token] = accountID
	return token
}

func (s *store) accountByToken(token string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	acct, ok := s.accounts[id]
	return acct, ok
}

func (s *store) accountByEmailLocked(email string) (*account, bool) {
	for _, acct := range s.accounts {
		if acct.Email == email {
			return acct, true
		}
	}
	return nil, false
}

func (s *store) usernameTakenLocked(username string) bool {
	for _, acct := range s.accounts {
		if strings.EqualFold(acct.Username, username) {
			return true
		}
	}
	return false
}

// relationBetweenLocked returns what `other` is to `viewer` (coach, student,
// friend), or "" when no accepted courtship links them.
func (s *store) relationBetweenLocked(viewerID, otherID int) (models.CourtshipType, int) {
	for _, c := range s.courtships {
		if c.RequesterID == viewerID && c.TargetID == otherID {
			return c.Role, c.ID
		}
		if c.TargetID == viewerID && c.RequesterID == otherID {
			return inverseRole(c.Role), c.ID
		}
	}
	return "", 0
}

// inverseRole flips a role to the other party's point of view.
func inverseRole(role models.CourtshipType) models.CourtshipType {
	switch role {
	case models.CourtshipCoach:
		return models.CourtshipStudent
	case models.CourtshipStudent:
		return models.CourtshipCoach
	}
	return role
}

// canView applies the visibility rules for an upload against a viewer.
func (s *store) canViewLocked(viewerID int, up *uploadRec) bool {
	if viewerID == up.OwnerID {
		return true
	}
	for _, id := range up.Visibility.AlsoSharedWith {
		if id == viewerID {
			return true
		}
	}
	relation, _ := s.relationBetweenLocked(up.OwnerID, viewerID) // what the viewer is to the owner
	switch up.Visibility.Default {
	case models.VisibilityPublic:
		return true
	case models.VisibilityCoachesOnly:
		return relation == models.CourtshipCoach
	case models.VisibilityFriendsOnly:
		return relation == models.CourtshipFriend
	case models.VisibilityFriendsAndCoaches:
		return relation == models.CourtshipFriend || relation == models.CourtshipCoach
	}
	return false
}

func (s *store) bucketSizeLocked(bucketID int) int {
	n := 0
	for _, up := range s.uploads {
		if up.BucketID == bucketID {
			n++
		}
	}
	return n
}

func (s *store) courtshipCountLocked(accountID int) int {
	n := 0
	for _, c := range s.courtships {
		if c.RequesterID == accountID || c.TargetID == accountID {
			n++
		}
	}
	return n
}

func (s *store) uploadCountLocked(accountID int) int {
	n := 0
	for _, up := range s.uploads {
		if up.OwnerID == accountID {
			n++
		}
	}
	return n
}

// deleteAccountLocked removes an account and everything hanging off it.
func (s *store) deleteAccountLocked(accountID int) {
	delete(s.accounts, accountID)
	for token, id := range s.sessions {
		if id == accountID {
			delete(s.sessions, token)
		}
	}
	for id, b := range s.buckets {
		if b.OwnerID == accountID {
			delete(s.buckets, id)
		}
	}
	for id, up := range s.uploads {
		if up.OwnerID == accountID {
			s.deleteUploadLocked(id, up)
		}
	}
	for id, c := range s.comments {
		if c.AuthorID == accountID {
			delete(s.comments, id)
		}
	}
	for id, r := range s.requests {
		if r.FromID == accountID || r.ToID == accountID {
			delete(s.requests, id)
		}
	}
	for id, c := range s.courtships {
		if c.RequesterID == accountID || c.TargetID == accountID {
			delete(s.courtships, id)
		}
	}
}

// deleteUploadLocked removes an upload, its blob and its comments.
func (s *store) deleteUploadLocked(id int, up *uploadRec) {
	delete(s.blobs, up.Key)
	delete(s.uploads, id)
	for cid, c := range s.comments {
		if c.UploadID == id {
			delete(s.comments, cid)
		}
	}
}

// sortedIDs yields deterministic iteration order for list endpoints.
func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
