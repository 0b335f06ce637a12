package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

type loginPayload struct {
	Method   string `json:"method"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IDToken  string `json:"id_token"`
}

type registerPayload struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// handleLogin answers 200 for an existing account and 201 when the login
// created one, which is what routes a client to onboarding.
func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed login payload")
		return
	}

	email := payload.Email
	confirmed := false
	switch payload.Method {
	case "password":
		if email == "" || payload.Password == "" {
			h.writeError(w, http.StatusBadRequest, "email and password required")
			return
		}
	case "google", "apple":
		if payload.IDToken == "" {
			h.writeError(w, http.StatusBadRequest, "id_token required")
			return
		}
		// The mock treats the identity token as the account handle instead
		// of verifying it with the provider.
		email = payload.IDToken
		if !strings.Contains(email, "@") {
			email += "@oauth.mock"
		}
		confirmed = true
	default:
		h.writeError(w, http.StatusBadRequest, "unknown login method")
		return
	}

	h.store.mu.Lock()
	acct, exists := h.store.accountByEmailLocked(email)
	if exists && payload.Method == "password" && acct.Password != payload.Password {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !exists {
		acct = h.createAccountLocked(email, payload.Password, confirmed)
	}
	token := h.store.newSessionLocked(acct.ID)
	user := h.store.renderUserLocked(acct, 0)
	h.store.mu.Unlock()

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	h.log.Info("login", "user", user.Username, "created", !exists)
	h.writeJSON(w, status, models.Auth{Token: token, User: user})
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed register payload")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		h.writeError(w, http.StatusBadRequest, "username, email and password required")
		return
	}

	h.store.mu.Lock()
	if h.store.usernameTakenLocked(payload.Username) {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusBadRequest, "username already taken")
		return
	}
	if _, exists := h.store.accountByEmailLocked(payload.Email); exists {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusBadRequest, "email already registered")
		return
	}
	acct := &account{
		ID:          h.store.nextIDLocked(),
		Username:    payload.Username,
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		Password:    payload.Password,
	}
	h.store.accounts[acct.ID] = acct
	token := h.store.newSessionLocked(acct.ID)
	user := h.store.renderUserLocked(acct, 0)
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusCreated, models.Auth{Token: token, User: user})
}

// createAccountLocked provisions an account for a first-time login, deriving
// a unique username from the email.
func (h *handler) createAccountLocked(email, password string, confirmed bool) *account {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	username := base
	for n := 2; h.store.usernameTakenLocked(username); n++ {
		username = base + strconv.Itoa(n)
	}
	acct := &account{
		ID:             h.store.nextIDLocked(),
		Username:       username,
		DisplayName:    base,
		Email:          email,
		Password:       password,
		EmailConfirmed: confirmed,
	}
	h.store.accounts[acct.ID] = acct
	return acct
}

func (h *handler) handleMe(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.RLock()
	user := h.store.renderUserLocked(viewer, 0)
	h.store.mu.RUnlock()
	h.writeJSON(w, http.StatusOK, user)
}

func (h *handler) handleUpdateMe(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		Username    *string `json:"username"`
		DisplayName *string `json:"display_name"`
		Biography   *string `json:"biography"`
		Email       *string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed profile payload")
		return
	}

	h.store.mu.Lock()
	if payload.Username != nil && *payload.Username != viewer.Username {
		if h.store.usernameTakenLocked(*payload.Username) {
			h.store.mu.Unlock()
			h.writeError(w, http.StatusBadRequest, "username already taken")
			return
		}
		viewer.Username = *payload.Username
	}
	if payload.DisplayName != nil {
		viewer.DisplayName = *payload.DisplayName
	}
	if payload.Biography != nil {
		viewer.Biography = *payload.Biography
	}
	if payload.Email != nil && *payload.Email != viewer.Email {
		viewer.Email = *payload.Email
		viewer.EmailConfirmed = false
	}
	user := h.store.renderUserLocked(viewer, 0)
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusOK, user)
}

func (h *handler) handleDeleteMe(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	h.store.deleteAccountLocked(viewer.ID)
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	h.store.mu.RLock()
	taken := h.store.usernameTakenLocked(name)
	h.store.mu.RUnlock()
	h.writeJSON(w, http.StatusOK, map[string]bool{"available": !taken})
}
