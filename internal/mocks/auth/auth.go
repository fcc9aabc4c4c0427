// Package auth contains simple hand-written test doubles for the auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data"
	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityStore   = (*MemoryIdentityStore)(nil)
	_ ports.ConnectionStore = (*MemoryConnectionStore)(nil)
	_ ports.OAuthProvider   = (*MockOAuthProvider)(nil)
	_ ports.PasswordHasher  = (*PlainHasher)(nil)
)

// MemoryIdentityStore is an in-memory IdentityStore returning the same
// sentinel errors as the pgx-backed repo.
type MemoryIdentityStore struct {
	mu       sync.Mutex
	nextID   int
	users    map[string]*model.User
	accounts map[string]*model.UserAccount // keyed by email
}

// NewMemoryIdentityStore creates an empty MemoryIdentityStore.
func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{
		users:    make(map[string]*model.User),
		accounts: make(map[string]*model.UserAccount),
	}
}

func (s *MemoryIdentityStore) CreateLocalUser(_ context.Context, params model.CreateLocalUserParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accounts[params.Email]; ok {
		if existing.ThirdParty {
			return "", data.ErrEmailTakenThirdParty
		}
		return "", data.ErrEmailTaken
	}

	id := s.newID()
	s.users[id] = &model.User{ID: id, FirstName: params.FirstName, LastName: params.LastName}
	s.accounts[params.Email] = &model.UserAccount{
		UserID:       id,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         domainauth.RoleCustomer,
	}
	return id, nil
}

func (s *MemoryIdentityStore) CreateThirdPartyUser(_ context.Context, params model.CreateThirdPartyUserParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accounts[params.Email]; ok {
		if existing.ThirdParty {
			return "", data.ErrEmailTakenThirdParty
		}
		return "", data.ErrEmailTaken
	}

	id := s.newID()
	s.users[id] = &model.User{ID: id, FirstName: params.FirstName, LastName: params.LastName}
	s.accounts[params.Email] = &model.UserAccount{
		UserID:         id,
		Email:          params.Email,
		ThirdParty:     true,
		Provider:       params.Provider,
		ProviderUserID: params.ProviderUserID,
		Role:           domainauth.RoleCustomer,
	}
	return id, nil
}

func (s *MemoryIdentityStore) AccountByEmail(_ context.Context, email string) (*model.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[email]
	if !ok {
		return nil, data.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *MemoryIdentityStore) UserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryIdentityStore) ProfileByID(_ context.Context, id string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	for _, account := range s.accounts {
		if account.UserID == id {
			return &model.Profile{
				UserID:      user.ID,
				FirstName:   user.FirstName,
				LastName:    user.LastName,
				PhoneNumber: user.PhoneNumber,
				JobTitle:    user.JobTitle,
				Email:       account.Email,
				ThirdParty:  account.ThirdParty,
			}, nil
		}
	}
	return nil, data.ErrUserNotFound
}

// SetRole overrides an account's role, for authorization tests.
func (s *MemoryIdentityStore) SetRole(email string, role domainauth.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.accounts[email]; ok {
		account.Role = role
	}
}

func (s *MemoryIdentityStore) newID() string {
	s.nextID++
	return fmt.Sprintf("user-%d", s.nextID)
}

// MemoryConnectionStore is an in-memory ConnectionStore backed by a
// MemoryIdentityStore for profile lookups.
type MemoryConnectionStore struct {
	mu          sync.Mutex
	nextID      int
	connections []model.Connection
	Identities  *MemoryIdentityStore
}

// NewMemoryConnectionStore creates a MemoryConnectionStore sharing identities.
func NewMemoryConnectionStore(identities *MemoryIdentityStore) *MemoryConnectionStore {
	return &MemoryConnectionStore{Identities: identities}
}

func (s *MemoryConnectionStore) AddConnection(ctx context.Context, params model.CreateConnectionParams) (*model.Connection, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.Identities.UserByID(ctx, params.ConnectedUserID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.connections {
		if c.UserID == params.UserID && c.ConnectedUserID == params.ConnectedUserID {
			return nil, data.ErrConnectionExists
		}
	}

	s.nextID++
	conn := model.Connection{
		ID:              fmt.Sprintf("conn-%d", s.nextID),
		UserID:          params.UserID,
		ConnectedUserID: params.ConnectedUserID,
	}
	s.connections = append(s.connections, conn)
	return &conn, nil
}

func (s *MemoryConnectionStore) ListConnections(ctx context.Context, userID string) ([]model.ConnectionProfile, error) {
	s.mu.Lock()
	conns := append([]model.Connection(nil), s.connections...)
	s.mu.Unlock()

	var out []model.ConnectionProfile
	for _, c := range conns {
		if c.UserID != userID {
			continue
		}
		profile, err := s.Identities.ProfileByID(ctx, c.ConnectedUserID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ConnectionProfile{
			ConnectionID: c.ID,
			CreatedAt:    c.CreatedAt,
			User:         *profile,
		})
	}
	return out, nil
}

func (s *MemoryConnectionStore) ListUsersExcept(ctx context.Context, userID string) ([]model.Profile, error) {
	s.Identities.mu.Lock()
	ids := make([]string, 0, len(s.Identities.users))
	for id := range s.Identities.users {
		if id != userID {
			ids = append(ids, id)
		}
	}
	s.Identities.mu.Unlock()

	var out []model.Profile
	for _, id := range ids {
		profile, err := s.Identities.ProfileByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *profile)
	}
	return out, nil
}

// MockOAuthProvider simulates the Google provider with a fixed identity.
type MockOAuthProvider struct {
	ExchangeFunc func(ctx context.Context, code string) (domainauth.ProviderIdentity, error)

	Identity domainauth.ProviderIdentity
	BaseURL  string
}

// NewMockOAuthProvider creates a MockOAuthProvider with sensible defaults.
func NewMockOAuthProvider() *MockOAuthProvider {
	return &MockOAuthProvider{
		BaseURL: "https://mock-idp/auth",
		Identity: domainauth.ProviderIdentity{
			Provider:       "google",
			ProviderUserID: "google-user-1",
			Email:          "mock.user@example.com",
			EmailVerified:  true,
			FirstName:      "Mock",
			LastName:       "User",
		},
	}
}

func (m *MockOAuthProvider) Name() string { return "google" }

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return fmt.Sprintf("%s?state=%s", m.BaseURL, state)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (domainauth.ProviderIdentity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return m.Identity, nil
}

// PlainHasher stores passwords with a marker prefix instead of hashing.
// Keeps unit tests fast; bcrypt is covered by its own adapter tests.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (PlainHasher) Compare(hash, password string) error {
	if hash != "plain:"+password {
		return apperrors.Unauthenticated("Email or password is incorrect")
	}
	return nil
}
