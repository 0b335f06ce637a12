// Package session owns the client side of the login lifecycle: the
// loggedOut → authenticating → loggedIn state machine, the persisted session
// token, and the top-level route the UI should show. The server remains the
// sole authority on permissions; this layer only mirrors what it was told.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

// State is the session lifecycle state.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged-in"
	}
	return "logged-out"
}

// Route is the top-level screen the session state maps to. This is the whole
// router: four states, nothing general-purpose.
type Route int

const (
	RouteLogin Route = iota
	RouteOnboarding
	RouteConfirmEmail
	RouteMain
)

// Manager holds the session token and the authenticated user, and drives
// state transitions on login, logout, 401 and account deletion.
type Manager struct {
	client *api.Client
	store  TokenStore
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	token   string
	user    models.User
	newUser bool
}

// NewManager wires a Manager into the gateway: the manager becomes the
// client's token source and its 401 hook.
func NewManager(client *api.Client, store TokenStore) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		log:    slog.Default(),
	}
	client.Tokens = m
	client.OnUnauthorized = m.Invalidate
	return m
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the authenticated user. Zero value when logged out.
func (m *Manager) User() models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// SetUser replaces the cached profile after an edit.
func (m *Manager) SetUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

// Restore loads the persisted token and fetches the profile. With no stored
// token it is a no-op and the manager stays logged out. A stored token whose
// profile cannot be fetched or decoded is fatal for entry into the main app:
// the error is returned and the session stays logged out.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	if token == "" {
		return nil
	}

	m.setToken(token, StateAuthenticating)
	user, err := m.client.Me(ctx)
	if err != nil {
		m.Invalidate()
		return fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	m.user = user
	m.state = StateLoggedIn
	m.mu.Unlock()
	m.log.Info("session restored", "user", user.Username)
	return nil
}

// Login exchanges credentials for a session. A 201 from the server means the
// account was created by this login; Route then points at onboarding.
func (m *Manager) Login(ctx context.Context, req api.LoginRequest) (models.User, error) {
	m.setToken("", StateAuthenticating)

	auth, newUser, err := m.client.Login(ctx, req)
	if err != nil {
		m.setToken("", StateLoggedOut)
		return models.User{}, err
	}

	m.mu.Lock()
	m.token = auth.Token
	m.user = auth.User
	m.newUser = newUser
	m.state = StateLoggedIn
	m.mu.Unlock()

	if err := m.store.Save(auth.Token); err != nil {
		m.log.Warn("could not persist session token", "error", err)
	}
	m.log.Info("logged in", "user", auth.User.Username, "new_user", newUser)
	return auth.User, nil
}

// Register creates a password account. A fresh account always routes to
// onboarding.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (models.User, error) {
	m.setToken("", StateAuthenticating)

	auth, err := m.client.Register(ctx, req)
	if err != nil {
		m.setToken("", StateLoggedOut)
		return models.User{}, err
	}

	m.mu.Lock()
	m.token = auth.Token
	m.user = auth.User
	m.newUser = true
	m.state = StateLoggedIn
	m.mu.Unlock()

	if err := m.store.Save(auth.Token); err != nil {
		m.log.Warn("could not persist session token", "error", err)
	}
	return auth.User, nil
}

// Logout clears the token store and the in-memory state. Purely local: no
// network call is made.
func (m *Manager) Logout() {
	m.Invalidate()
	m.log.Info("logged out")
}

// Invalidate drops the session without logging. Fired by the gateway on 401.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.user = models.User{}
	m.newUser = false
	m.state = StateLoggedOut
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn("could not clear session token", "error", err)
	}
}

// DeleteAccount deletes the account server-side and then tears down the
// session like a logout.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	if err := m.client.DeleteMe(ctx); err != nil {
		return err
	}
	m.Invalidate()
	return nil
}

// CompleteOnboarding moves a freshly created account from the onboarding
// route to the main app.
func (m *Manager) CompleteOnboarding() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newUser = false
}

// Route maps the session state to the screen the UI should show.
func (m *Manager) Route() Route {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLoggedIn {
		return RouteLogin
	}
	if m.newUser {
		return RouteOnboarding
	}
	if !m.user.EmailConfirmed {
		return RouteConfirmEmail
	}
	return RouteMain
}

func (m *Manager) setToken(token string, state State) {
	m.mu.Lock()
	m.token = token
	m.state = state
	m.mu.Unlock()
}
