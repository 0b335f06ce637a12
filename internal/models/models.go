package models

import "encoding/json"

// UnknownID is the sentinel used when the server omits a numeric identifier.
// Partial payloads are expected; callers check for UnknownID instead of
// relying on a failed decode.
const UnknownID = -1

// User represents an account on the platform.
type User struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	Biography      string     `json:"biography"`
	Email          string     `json:"email"`
	EmailConfirmed bool       `json:"email_confirmed"`
	Courtship      *Courtship `json:"courtship,omitempty"` // relationship to the viewing user, if any
	UploadCount    int        `json:"n_uploads"`
	CourtshipCount int        `json:"n_courtships"`
}

// UnmarshalJSON applies the lenient decode policy: absent or null fields fall
// back to sentinels so a partial server response still yields a usable User.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := alias{ID: UnknownID}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux)
	return nil
}

// Bucket is a user-defined tag grouping a user's uploads.
type Bucket struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Size         int       `json:"size"`
	LastModified Timestamp `json:"last_modified"`
	OwnerID      int       `json:"owner_id"`
}

func (b *Bucket) UnmarshalJSON(data []byte) error {
	type alias Bucket
	aux := alias{ID: UnknownID, OwnerID: UnknownID}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Bucket(aux)
	return nil
}

// Upload is a video owned by a user. StreamReady flips to true once the
// server-side conversion finishes; until then the URL is not playable.
type Upload struct {
	ID           int        `json:"id"`
	Created      Timestamp  `json:"created"`
	DisplayTitle string     `json:"display_title"`
	StreamReady  bool       `json:"stream_ready"`
	BucketID     int        `json:"bucket_id"`
	Visibility   Visibility `json:"visibility"`
	URL          string     `json:"url"`
	Thumbnail    string     `json:"thumbnail"`
}

func (u *Upload) UnmarshalJSON(data []byte) error {
	type alias Upload
	aux := alias{ID: UnknownID, BucketID: UnknownID}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = Upload(aux)
	return nil
}

// PresignedPost carries the server-issued fields for a direct multipart POST
// to object storage. The client never holds storage credentials; everything
// needed is in Fields.
type PresignedPost struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// NewUploadResponse is returned by upload creation: the pending upload plus
// the presigned POST the client must perform before requesting conversion.
type NewUploadResponse struct {
	Upload    Upload        `json:"upload"`
	Presigned PresignedPost `json:"presigned"`
}

// Auth is the /login/ and /register/ response: the session token and the
// authenticated user's profile.
type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
