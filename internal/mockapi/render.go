package mockapi

import (
	"fmt"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// Rendering turns internal records into the wire DTOs, relative to the
// viewing user where the API calls for it.

func (s *store) renderUserLocked(acct *account, viewerID int) models.User {
	user := models.User{
		ID:             acct.ID,
		Username:       acct.Username,
		DisplayName:    acct.DisplayName,
		Biography:      acct.Biography,
		Email:          acct.Email,
		EmailConfirmed: acct.EmailConfirmed,
		UploadCount:    s.uploadCountLocked(acct.ID),
		CourtshipCount: s.courtshipCountLocked(acct.ID),
	}
	if viewerID != 0 && viewerID != acct.ID {
		user.Courtship = s.renderRelationLocked(viewerID, acct.ID)
	}
	return user
}

// renderRelationLocked describes what other is to viewer: an accepted
// courtship, a pending request with its direction, or nil.
func (s *store) renderRelationLocked(viewerID, otherID int) *models.Courtship {
	if role, id := s.relationBetweenLocked(viewerID, otherID); role != "" {
		return &models.Courtship{ID: id, Type: role}
	}
	for _, req := range s.requests {
		if req.FromID == viewerID && req.ToID == otherID {
			return &models.Courtship{ID: req.ID, Type: req.Type, Dir: models.DirectionOut}
		}
		if req.FromID == otherID && req.ToID == viewerID {
			return &models.Courtship{ID: req.ID, Type: req.Type, Dir: models.DirectionIn}
		}
	}
	return nil
}

func (s *store) renderBucketLocked(b *bucketRec) models.Bucket {
	return models.Bucket{
		ID:           b.ID,
		Name:         b.Name,
		Size:         s.bucketSizeLocked(b.ID),
		LastModified: models.Timestamp{Time: b.LastModified},
		OwnerID:      b.OwnerID,
	}
}

func renderUpload(up *uploadRec) models.Upload {
	out := models.Upload{
		ID:           up.ID,
		Created:      models.Timestamp{Time: up.Created},
		DisplayTitle: up.Title,
		StreamReady:  up.StreamReady,
		BucketID:     up.BucketID,
		Visibility:   up.Visibility,
	}
	if up.StreamReady {
		out.URL = fmt.Sprintf("https://cdn.mock.myace.ai/%s/stream.m3u8", up.Key)
		out.Thumbnail = fmt.Sprintf("https://cdn.mock.myace.ai/%s/thumb.jpg", up.Key)
	}
	return out
}

func (s *store) renderCommentLocked(c *commentRec) models.Comment {
	var author models.User
	if acct, ok := s.accounts[c.AuthorID]; ok {
		author = s.renderUserLocked(acct, 0)
	}
	var comment models.Comment
	// Round-trip through the wire codec so the anchor convention is applied
	// exactly the way clients will see it.
	raw := fmt.Sprintf(`{"id":%d,"upload_id":%d,"text":%q}`, c.ID, c.UploadID, c.Text)
	_ = comment.UnmarshalJSON([]byte(raw))
	comment.Created = models.Timestamp{Time: c.Created}
	comment.Author = author
	return comment
}
