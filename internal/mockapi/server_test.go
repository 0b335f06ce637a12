package mockapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
	"github.com/thereidfleish/myace-sub000/internal/storecli"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)
	return ts
}

// signUp registers an account and returns a gateway authenticated as it.
func signUp(t *testing.T, ts *httptest.Server, username string) (*api.Client, models.User) {
	t.Helper()
	client := api.New(ts.URL, nil)
	auth, err := client.Register(context.Background(), api.RegisterRequest{
		Username:    username,
		DisplayName: username,
		Email:       username + "@test.local",
		Password:    "pw",
	})
	require.NoError(t, err)
	client.Tokens = api.StaticToken(auth.Token)
	return client, auth.User
}

// court establishes an accepted courtship: requester asks, target accepts.
// role is what the target becomes to the requester.
func court(t *testing.T, requester, target *api.Client, targetID int, role models.CourtshipType) int {
	t.Helper()
	req, err := requester.CreateCourtshipRequest(context.Background(), targetID, role)
	require.NoError(t, err)
	require.NoError(t, target.AcceptCourtshipRequest(context.Background(), req.ID))
	return req.ID
}

// createUpload registers an upload and optionally pushes bytes and converts
// it so it becomes stream-ready.
func createUpload(t *testing.T, client *api.Client, title string, vis models.Visibility, convert bool) models.Upload {
	t.Helper()
	created, err := client.CreateUpload(context.Background(), api.NewUpload{
		Filename:     "rally.mp4",
		DisplayTitle: title,
		BucketID:     models.UnknownID,
		Visibility:   vis,
	})
	require.NoError(t, err)
	if convert {
		err = storecli.PostVideo(context.Background(), nil, created.Presigned, "rally.mp4", strings.NewReader("bytes"))
		require.NoError(t, err)
		require.NoError(t, client.ConvertUpload(context.Background(), created.Upload.ID))
	}
	return created.Upload
}

func notFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var srv *api.ServerError
	require.True(t, errors.As(err, &srv))
	assert.True(t, srv.NotFound())
}

func TestVisibilityTiers(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")
	bob, bobUser := signUp(t, ts, "bob")
	carol, carolUser := signUp(t, ts, "carol")
	dave, daveUser := signUp(t, ts, "dave")

	court(t, alice, bob, bobUser.ID, models.CourtshipCoach)    // bob coaches alice
	court(t, alice, carol, carolUser.ID, models.CourtshipFriend)

	up := createUpload(t, alice, "Backhand drill", models.Visibility{Default: models.VisibilityPrivate}, false)

	cases := []struct {
		tier  models.VisibilityDefault
		bob   bool
		carol bool
		dave  bool
	}{
		{models.VisibilityPrivate, false, false, false},
		{models.VisibilityCoachesOnly, true, false, false},
		{models.VisibilityFriendsOnly, false, true, false},
		{models.VisibilityFriendsAndCoaches, true, true, false},
		{models.VisibilityPublic, true, true, true},
	}
	for _, tc := range cases {
		vis := models.Visibility{Default: tc.tier}
		_, err := alice.UpdateUpload(context.Background(), up.ID, api.UploadUpdate{Visibility: &vis})
		require.NoError(t, err)

		// The owner always sees their own upload.
		_, err = alice.Upload(context.Background(), up.ID)
		require.NoError(t, err, "tier %s", tc.tier)

		for _, viewer := range []struct {
			name    string
			client  *api.Client
			allowed bool
		}{
			{"coach", bob, tc.bob},
			{"friend", carol, tc.carol},
			{"stranger", dave, tc.dave},
		} {
			_, err := viewer.client.Upload(context.Background(), up.ID)
			if viewer.allowed {
				assert.NoError(t, err, "tier %s, viewer %s", tc.tier, viewer.name)
			} else {
				notFound(t, err)
			}
		}
	}

	// The allow-list punches through any tier.
	vis := models.Visibility{Default: models.VisibilityPrivate, AlsoSharedWith: []int{daveUser.ID}}
	_, err := alice.UpdateUpload(context.Background(), up.ID, api.UploadUpdate{Visibility: &vis})
	require.NoError(t, err)
	_, err = dave.Upload(context.Background(), up.ID)
	assert.NoError(t, err)
	_, err = bob.Upload(context.Background(), up.ID)
	notFound(t, err)
}

func TestFeedGating(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")
	bob, bobUser := signUp(t, ts, "bob")

	court(t, alice, bob, bobUser.ID, models.CourtshipFriend)

	public := models.Visibility{Default: models.VisibilityPublic}
	ready := createUpload(t, alice, "Match point", public, true)
	createUpload(t, alice, "Still converting", public, false)
	createUpload(t, alice, "Secret serve", models.Visibility{Default: models.VisibilityPrivate}, true)

	feed, err := bob.Feed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1, "only stream-ready, visible partner uploads appear")
	assert.Equal(t, ready.ID, feed[0].ID)
	assert.True(t, feed[0].StreamReady)
	assert.NotEmpty(t, feed[0].URL, "ready uploads carry a playable URL")

	// Your own uploads never land in your feed.
	feed, err = alice.Feed(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, feed)

	// Newer uploads come first.
	second := createUpload(t, alice, "Tiebreak", public, true)
	feed, err = bob.Feed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, ready.ID, feed[1].ID)
}

func TestFeedRequiresCourtship(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")
	bob, _ := signUp(t, ts, "bob")

	createUpload(t, alice, "Open practice", models.Visibility{Default: models.VisibilityPublic}, true)

	// Public or not, the feed only surfaces courtship partners.
	feed, err := bob.Feed(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestDeleteUploadCascades(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")

	up := createUpload(t, alice, "Serve practice", models.Visibility{Default: models.VisibilityPrivate}, true)
	comment, err := alice.CreateComment(context.Background(), up.ID, "toss higher", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, comment.AnchorSeconds)

	require.NoError(t, alice.DeleteUpload(context.Background(), up.ID))

	_, err = alice.Upload(context.Background(), up.ID)
	notFound(t, err)
	_, err = alice.Comments(context.Background(), up.ID)
	notFound(t, err)
}

func TestBucketDeleteDetachesUploads(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")

	bucket, err := alice.CreateBucket(context.Background(), "Serve")
	require.NoError(t, err)

	created, err := alice.CreateUpload(context.Background(), api.NewUpload{
		Filename:     "serve.mp4",
		DisplayTitle: "First serves",
		BucketID:     bucket.ID,
		Visibility:   models.Visibility{Default: models.VisibilityPrivate},
	})
	require.NoError(t, err)

	buckets, err := alice.Buckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].Size)

	require.NoError(t, alice.DeleteBucket(context.Background(), bucket.ID))

	buckets, err = alice.Buckets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, buckets)

	up, err := alice.Upload(context.Background(), created.Upload.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UnknownID, up.BucketID, "the upload survives its bucket, untagged")
}

func TestConvertRequiresPostedBytes(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")

	up := createUpload(t, alice, "Early convert", models.Visibility{Default: models.VisibilityPrivate}, false)
	err := alice.ConvertUpload(context.Background(), up.ID)
	require.Error(t, err)
	var srv *api.ServerError
	require.True(t, errors.As(err, &srv))
	assert.Equal(t, http.StatusBadRequest, srv.StatusCode)
}

func TestEmailChangeUnconfirms(t *testing.T) {
	ts := startServer(t)
	client := api.New(ts.URL, nil)

	auth, newUser, err := client.Login(context.Background(), api.LoginRequest{Method: api.LoginMethodGoogle, IDToken: "serena@gmail.com"})
	require.NoError(t, err)
	assert.True(t, newUser)
	assert.True(t, auth.User.EmailConfirmed, "OAuth identities arrive confirmed")
	assert.Equal(t, "serena", auth.User.Username)
	client.Tokens = api.StaticToken(auth.Token)

	email := "serena@newclub.org"
	user, err := client.UpdateMe(context.Background(), api.UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.False(t, user.EmailConfirmed, "changing the email requires re-confirmation")
}

func TestOAuthUsernameCollision(t *testing.T) {
	ts := startServer(t)
	first := api.New(ts.URL, nil)
	authA, _, err := first.Login(context.Background(), api.LoginRequest{Method: api.LoginMethodGoogle, IDToken: "serena@gmail.com"})
	require.NoError(t, err)
	assert.Equal(t, "serena", authA.User.Username)

	second := api.New(ts.URL, nil)
	authB, _, err := second.Login(context.Background(), api.LoginRequest{Method: api.LoginMethodGoogle, IDToken: "serena@club.org"})
	require.NoError(t, err)
	assert.Equal(t, "serena2", authB.User.Username, "usernames derived from email get deduplicated")
}

func TestCourtshipMutualExclusion(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")
	bob, bobUser := signUp(t, ts, "bob")

	_, err := alice.CreateCourtshipRequest(context.Background(), bobUser.ID, models.CourtshipFriend)
	require.NoError(t, err)

	// A second request while one is pending is rejected, in either direction.
	_, err = alice.CreateCourtshipRequest(context.Background(), bobUser.ID, models.CourtshipCoach)
	require.Error(t, err)

	users, err := bob.SearchUsers(context.Background(), "alice", 1)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = bob.CreateCourtshipRequest(context.Background(), users[0].ID, models.CourtshipStudent)
	require.Error(t, err)

	// Once accepted, requesting again is still rejected.
	incoming, err := bob.CourtshipRequests(context.Background(), models.DirectionIn)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	require.NoError(t, bob.AcceptCourtshipRequest(context.Background(), incoming[0].ID))

	_, err = alice.CreateCourtshipRequest(context.Background(), bobUser.ID, models.CourtshipFriend)
	require.Error(t, err)
	var srv *api.ServerError
	require.True(t, errors.As(err, &srv))
	assert.Equal(t, "courtship already exists", srv.Message)
}

func TestSearchShowsRelationship(t *testing.T) {
	ts := startServer(t)
	alice, aliceUser := signUp(t, ts, "alice")
	bob, _ := signUp(t, ts, "bob")

	req, err := bob.CreateCourtshipRequest(context.Background(), aliceUser.ID, models.CourtshipCoach)
	require.NoError(t, err)
	require.True(t, req.Type.Pending())

	users, err := bob.SearchUsers(context.Background(), "alice", 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].Courtship)
	assert.Equal(t, models.CourtshipCoachRequest, users[0].Courtship.Type)
	assert.Equal(t, models.DirectionOut, users[0].Courtship.Dir)

	// From alice's side the same request points inward.
	users, err = alice.SearchUsers(context.Background(), "bob", 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].Courtship)
	assert.Equal(t, models.DirectionIn, users[0].Courtship.Dir)
}

func TestCourtshipRolesAreRelative(t *testing.T) {
	ts := startServer(t)
	alice, aliceUser := signUp(t, ts, "alice")
	bob, bobUser := signUp(t, ts, "bob")

	// Alice asks bob to be her coach.
	court(t, alice, bob, bobUser.ID, models.CourtshipCoach)

	fromAlice, err := alice.Courtships(context.Background(), aliceUser.ID)
	require.NoError(t, err)
	require.Len(t, fromAlice, 1)
	assert.Equal(t, models.CourtshipCoach, fromAlice[0].Type)
	require.NotNil(t, fromAlice[0].User)
	assert.Equal(t, "bob", fromAlice[0].User.Username)

	fromBob, err := bob.Courtships(context.Background(), bobUser.ID)
	require.NoError(t, err)
	require.Len(t, fromBob, 1)
	assert.Equal(t, models.CourtshipStudent, fromBob[0].Type, "the same courtship reads as student from the coach's side")
	require.NotNil(t, fromBob[0].User)
	assert.Equal(t, "alice", fromBob[0].User.Username)
}

func TestDeleteAccountCascades(t *testing.T) {
	ts := startServer(t)
	alice, _ := signUp(t, ts, "alice")
	bob, bobUser := signUp(t, ts, "bob")

	court(t, alice, bob, bobUser.ID, models.CourtshipFriend)
	up := createUpload(t, alice, "Goodbye", models.Visibility{Default: models.VisibilityPublic}, true)

	require.NoError(t, alice.DeleteMe(context.Background()))

	// The session died with the account.
	_, err := alice.Me(context.Background())
	require.Error(t, err)
	var srv *api.ServerError
	require.True(t, errors.As(err, &srv))
	assert.Equal(t, http.StatusUnauthorized, srv.StatusCode)

	// Bob's side of the world is cleaned up too.
	courtships, err := bob.Courtships(context.Background(), bobUser.ID)
	require.NoError(t, err)
	assert.Empty(t, courtships)

	_, err = bob.Upload(context.Background(), up.ID)
	notFound(t, err)
}
