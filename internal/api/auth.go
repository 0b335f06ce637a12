package api

import (
	"context"
	"net/http"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// Login methods accepted by the backend. Google and Apple logins forward the
// provider's identity token verbatim.
const (
	LoginMethodPassword = "password"
	LoginMethodGoogle   = "google"
	LoginMethodApple    = "apple"
)

// LoginRequest is the /login/ payload. Email and Password are set for the
// password method; IDToken for the OAuth methods.
type LoginRequest struct {
	Method   string `json:"method"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	IDToken  string `json:"id_token,omitempty"`
}

// RegisterRequest is the /register/ payload for password accounts.
type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Login exchanges credentials for a session. newUser is true when the server
// answered 201, meaning the account was created by this login (OAuth
// first-timers) and the caller should route to onboarding.
func (c *Client) Login(ctx context.Context, req LoginRequest) (auth models.Auth, newUser bool, err error) {
	status, err := c.do(ctx, http.MethodPost, "/login/", nil, req, &auth)
	if err != nil {
		return models.Auth{}, false, err
	}
	return auth, status == http.StatusCreated, nil
}

// Register creates a password account and returns its first session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.Auth, error) {
	var auth models.Auth
	if err := c.post(ctx, "/register/", req, &auth); err != nil {
		return models.Auth{}, err
	}
	return auth, nil
}
