package identity_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personalblog/identity"
)

func TestAuther_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		users := new(MockCredentialVerifier)
		tokens := new(MockTokenIssuer)

		user := &identity.User{Name: "alice"}
		users.On("GetByCredentials", ctx, "alice", "correct").Return(user, nil).Once()
		tokens.On("Issue", user).Return("signed-token", nil).Once()

		auther := identity.NewAuthenticator(users, tokens)

		token, err := auther.SignIn(ctx, "alice", "correct")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)

		users.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("maps a credential miss to AuthenticationFailed", func(t *testing.T) {
		users := new(MockCredentialVerifier)
		tokens := new(MockTokenIssuer)

		users.On("GetByCredentials", ctx, "alice", "wrong").Return(nil, identity.ErrNotFound).Once()

		auther := identity.NewAuthenticator(users, tokens)

		token, err := auther.SignIn(ctx, "alice", "wrong")
		require.ErrorIs(t, err, identity.ErrAuthenticationFailed)
		assert.Empty(t, token)

		tokens.AssertNotCalled(t, "Issue")
	})

	t.Run("unknown name and wrong password are indistinguishable", func(t *testing.T) {
		users := new(MockCredentialVerifier)
		tokens := new(MockTokenIssuer)

		users.On("GetByCredentials", ctx, "ghost", "whatever").Return(nil, identity.ErrNotFound).Once()
		users.On("GetByCredentials", ctx, "alice", "wrong").Return(nil, identity.ErrNotFound).Once()

		auther := identity.NewAuthenticator(users, tokens)

		_, missingName := auther.SignIn(ctx, "ghost", "whatever")
		_, wrongPassword := auther.SignIn(ctx, "alice", "wrong")

		assert.Equal(t, missingName, wrongPassword)
	})

	t.Run("propagates lookup failures unchanged", func(t *testing.T) {
		users := new(MockCredentialVerifier)
		tokens := new(MockTokenIssuer)

		boom := goerrors.New("connection lost", goerrors.CategoryInternal)
		users.On("GetByCredentials", ctx, "alice", "correct").Return(nil, boom).Once()

		auther := identity.NewAuthenticator(users, tokens)

		_, err := auther.SignIn(ctx, "alice", "correct")
		require.ErrorIs(t, err, boom)
	})
}
