package impl

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	store  *memStore
	tokens *fakeTokenService
	svc    usecase.UserUsecase
}

func newUserFixture() *userFixture {
	store := newMemStore()
	tokens := newFakeTokenService()

	return &userFixture{
		store:  store,
		tokens: tokens,
		svc: NewUserService(
			&fakeTxManager{store: store},
			&fakeUserRepo{store: store},
			&fakeRefreshTokenRepo{store: store},
			fakeHasher{},
			tokens,
			discardLogger(),
		),
	}
}

func TestRegister_Customer(t *testing.T) {
	f := newUserFixture()

	out, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(out.UserID)
	require.NoError(t, err)

	user := f.store.users[userID]
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Equal(t, "hashed:secret123", user.PasswordHash)
	assert.Empty(t, f.store.vendors)
}

func TestRegister_VendorCreatesPendingProfile(t *testing.T) {
	f := newUserFixture()

	out, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "VENDOR",
		ShopName: "Bob's Shop",
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(out.UserID)
	require.NoError(t, err)

	require.Len(t, f.store.vendors, 1)
	for _, vendor := range f.store.vendors {
		assert.Equal(t, userID, vendor.UserID)
		assert.Equal(t, "Bob's Shop", vendor.ShopName)
		assert.Equal(t, entity.ApprovalPending, vendor.Status)
	}
}

func TestRegister_VendorWithoutShopName(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "VENDOR",
	})
	assertCode(t, err, "VALIDATION_FAILED")
	assert.Empty(t, f.store.users)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "secret123",
		Role:     "ADMIN",
	})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newUserFixture()

	input := &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "CUSTOMER",
	}
	_, err := f.svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), input)
	assertCode(t, err, "DUPLICATE_EMAIL")
	assert.Len(t, f.store.users, 1)
}

func TestLogin_Success(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "VENDOR",
		ShopName: "Bob's Shop",
	})
	require.NoError(t, err)

	out, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "Bob", out.User.Name)
	assert.Equal(t, "VENDOR", out.User.Role)
	require.NotNil(t, out.User.VendorStatus)
	assert.Equal(t, "PENDING", *out.User.VendorStatus)

	// The session is stored hashed, never as the raw token.
	require.Len(t, f.store.sessions, 1)
	_, rawStored := f.store.sessions[out.RefreshToken]
	assert.False(t, rawStored)

	// The access token carries the vendor ID.
	claims, err := f.tokens.ValidateAccessToken(out.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.VendorID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assertCode(t, err, "INVALID_CREDENTIALS")

	// Unknown email yields the same error, not a not-found leak.
	_, err = f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assertCode(t, err, "INVALID_CREDENTIALS")
}

func TestRefreshToken_Rotates(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	login, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	rotated, err := f.svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The old token is revoked; replaying it fails.
	_, err = f.svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	assertCode(t, err, "REFRESH_TOKEN_INVALID")

	// The rotated token still works.
	_, err = f.svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: rotated.RefreshToken,
	})
	require.NoError(t, err)
}

func TestRefreshToken_Expired(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	login, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	for _, session := range f.store.sessions {
		session.ExpiresAt = time.Now().Add(-time.Minute)
	}

	_, err = f.svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	assertCode(t, err, "REFRESH_TOKEN_INVALID")
}

func TestLogout(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	login, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: login.RefreshToken,
	}))
	assert.Empty(t, f.store.sessions)

	// Logging out twice is harmless.
	require.NoError(t, f.svc.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: login.RefreshToken,
	}))
}
