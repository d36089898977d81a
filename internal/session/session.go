// Package session holds the credential state shared by every gateway
// call and runs the refresh-on-401 protocol. Credential mutation is
// mutually exclusive with reads that hand out a token for signing; an
// in-flight request may race a refresh, which the retry-once discipline
// in the gateway tolerates by always retrying with whatever token the
// most recent refresh produced.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/thinkfirst/tutorsync/internal/log"
	"github.com/thinkfirst/tutorsync/internal/models"
)

// State is the session lifecycle state.
type State int

const (
	LoggedOut State = iota
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "logged out"
	}
}

// ErrAuthExpired means the refresh protocol failed and the session was
// cleared; the user has to authenticate again.
var ErrAuthExpired = errors.New("session expired, please log in again")

// ErrNotAuthenticated means an operation needed credentials and none
// are held.
var ErrNotAuthenticated = errors.New("not logged in")

// AuthGateway is the slice of the remote gateway the manager needs.
// All four endpoints are exempt from token attachment.
type AuthGateway interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ChildLogin(ctx context.Context, req models.ChildLoginRequest) (*models.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
}

// CredentialStore is the persisted credential blob contract.
type CredentialStore interface {
	SaveCredentials(creds models.Credentials) error
	GetCredentials() (*models.Credentials, error)
	ClearCredentials() error
	UpdateTokens(accessToken, refreshToken string) error
}

// Manager is the token session manager. It implements api.Authorizer.
type Manager struct {
	gateway AuthGateway
	store   CredentialStore

	mu    sync.RWMutex
	creds *models.Credentials
	state State
	subs  []chan State

	refresh singleflight.Group
}

// NewManager creates a manager, warm-starting from the persisted
// credential blob when one exists.
func NewManager(gateway AuthGateway, store CredentialStore) (*Manager, error) {
	m := &Manager{gateway: gateway, store: store, state: LoggedOut}

	creds, err := store.GetCredentials()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if creds.Complete() {
		m.creds = creds
		m.state = Authenticated
	}
	return m, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Authenticated reports whether credentials are held.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.Complete()
}

// Current returns a copy of the held credentials, or nil when logged out.
func (m *Manager) Current() *models.Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return nil
	}
	copied := *m.creds
	return &copied
}

// Changes returns a state subscription that replays the current state
// and then delivers every transition. Slow subscribers lag by at most
// one value.
func (m *Manager) Changes() <-chan State {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan State, 1)
	ch <- m.state
	m.subs = append(m.subs, ch)
	return ch
}

// setState transitions and notifies. Caller must hold m.mu.
func (m *Manager) setState(state State) {
	if m.state == state {
		return
	}
	m.state = state
	for _, ch := range m.subs {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}

// Login authenticates a parent and persists the credential set.
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	resp, err := m.gateway.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := m.adopt(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Register creates a parent account and persists the credential set.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	resp, err := m.gateway.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := m.adopt(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ChildLogin authenticates a child profile and persists the credential set.
func (m *Manager) ChildLogin(ctx context.Context, req models.ChildLoginRequest) (*models.AuthResponse, error) {
	resp, err := m.gateway.ChildLogin(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := m.adopt(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// adopt installs a fresh credential set, all-or-nothing.
func (m *Manager) adopt(resp *models.AuthResponse) error {
	creds := resp.Credentials("")
	if !creds.Complete() {
		return fmt.Errorf("incomplete credential set from backend")
	}
	if err := m.store.SaveCredentials(creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &creds
	m.setState(Authenticated)
	return nil
}

// Logout clears all credential state.
func (m *Manager) Logout() error {
	if err := m.store.ClearCredentials(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	m.setState(LoggedOut)
	return nil
}

// Token returns the current access token for request signing, or ""
// when logged out.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return "", nil
	}
	return m.creds.AccessToken, nil
}

// Refresh runs the single-flight refresh protocol. Concurrent callers
// that observed a 401 share one outstanding refresh call; each receives
// the token it produced. On failure the session is cleared and
// ErrAuthExpired is returned.
func (m *Manager) Refresh(ctx context.Context, stale string) (string, error) {
	token, err, _ := m.refresh.Do("refresh", func() (any, error) {
		m.mu.Lock()
		if m.creds == nil || m.creds.RefreshToken == "" {
			m.mu.Unlock()
			return "", fmt.Errorf("%w: no refresh token", ErrAuthExpired)
		}
		// A refresh that completed after the caller's 401 already
		// produced a newer token; hand it out instead of refreshing
		// again.
		if stale != "" && m.creds.AccessToken != stale {
			current := m.creds.AccessToken
			m.mu.Unlock()
			return current, nil
		}
		refreshToken := m.creds.RefreshToken
		m.setState(Refreshing)
		m.mu.Unlock()

		resp, err := m.gateway.RefreshToken(ctx, refreshToken)
		if err != nil {
			m.clearExpired()
			return "", fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}

		rotated := resp.RefreshToken
		if rotated == "" {
			rotated = refreshToken
		}

		m.mu.Lock()
		if m.creds == nil {
			// Logged out while the refresh was in flight.
			m.mu.Unlock()
			return "", ErrNotAuthenticated
		}
		m.creds.AccessToken = resp.Token
		m.creds.RefreshToken = rotated
		m.setState(Authenticated)
		m.mu.Unlock()

		// The in-memory session already advanced; a failed persist
		// only costs the warm start on the next launch.
		if err := m.store.UpdateTokens(resp.Token, rotated); err != nil {
			log.Errorf("failed to persist refreshed tokens: %v", err)
		}
		return resp.Token, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// clearExpired drops all credential state after a failed refresh.
func (m *Manager) clearExpired() {
	if err := m.store.ClearCredentials(); err != nil {
		log.Errorf("failed to clear expired credentials: %v", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	m.setState(LoggedOut)
}
