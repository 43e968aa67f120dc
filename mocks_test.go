package identity_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/personalblog/identity"
)

// MockLogger implements identity.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// TestIdentity is a plain identity.Identity stand-in
type TestIdentity struct {
	name  string
	roles []string
}

func (t TestIdentity) Identifier() string {
	return t.name
}

func (t TestIdentity) RoleNames() []string {
	return t.roles
}

// MockCredentialVerifier implements identity.CredentialVerifier
type MockCredentialVerifier struct {
	mock.Mock
}

func (m *MockCredentialVerifier) GetByCredentials(ctx context.Context, name, password string) (*identity.User, error) {
	args := m.Called(ctx, name, password)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTokenIssuer implements identity.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(id identity.Identity) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Validate(token string) (*identity.JWTClaims, error) {
	args := m.Called(token)
	if c := args.Get(0); c != nil {
		return c.(*identity.JWTClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthenticator implements identity.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignIn(ctx context.Context, name, password string) (string, error) {
	args := m.Called(ctx, name, password)
	return args.String(0), args.Error(1)
}

// MockUserManager implements identity.UserManager
type MockUserManager struct {
	mock.Mock
}

func (m *MockUserManager) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserManager) GetByFilter(ctx context.Context, filter *identity.UserFilter) ([]*identity.User, error) {
	args := m.Called(ctx, filter)
	if u := args.Get(0); u != nil {
		return u.([]*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserManager) Add(ctx context.Context, record *identity.User, password string) error {
	args := m.Called(ctx, record, password)
	return args.Error(0)
}

func (m *MockUserManager) Update(ctx context.Context, record *identity.User) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUserManager) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserManager) Subscribe(ctx context.Context, action bool, id uuid.UUID) error {
	args := m.Called(ctx, action, id)
	return args.Error(0)
}

func (m *MockUserManager) GrantRole(ctx context.Context, id uuid.UUID, roleName string) error {
	args := m.Called(ctx, id, roleName)
	return args.Error(0)
}
