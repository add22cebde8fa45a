package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	passwordHasher   service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	passwordHasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager:        txManager,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		passwordHasher:   passwordHasher,
		tokenService:     tokenService,
		logger:           logger,
	}
}

// Register creates a new account. Vendor registrations create the user and
// the PENDING vendor profile in one transaction.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role := entity.Role(input.Role)
	if !role.CanRegister() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role must be VENDOR or CUSTOMER")
	}

	if role == entity.RoleVendor && input.ShopName == "" {
		return nil, domainerrors.ErrShopNameRequired
	}

	hash, err := srv.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         role,
	}

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.NewUserRepository().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrDuplicateEmail
			}

			return errors.Wrap(err, "failed to create user")
		}

		if role != entity.RoleVendor {
			return nil
		}

		vendor := &entity.Vendor{
			UserID:   user.ID,
			ShopName: input.ShopName,
			Status:   entity.ApprovalPending,
		}
		if err := repos.NewVendorRepository().Create(ctx, vendor); err != nil {
			return errors.Wrap(err, "failed to create vendor profile")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("User registered", "userID", user.ID, "role", role)

	return &usecase.RegisterOutput{UserID: user.ID.String()}, nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// stored hashed so a database leak cannot replay sessions.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	if !srv.passwordHasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.logger.Info("User logged in", "userID", user.ID, "role", user.Role)

	return &usecase.LoginOutput{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         usecase.NewUserSummary(user),
	}, nil
}

// RefreshToken rotates a valid refresh token: the presented token's session
// is deleted and a fresh pair is issued.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := hashToken(input.RefreshToken)

	stored, err := srv.refreshTokenRepo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to look up refresh token")
	}

	if stored.UserID != claims.UserID {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	if err := srv.refreshTokenRepo.DeleteByHash(ctx, tokenHash); err != nil {
		return nil, errors.Wrap(err, "failed to revoke refresh token")
	}

	accessToken, refreshToken, err := srv.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &usecase.RefreshTokenOutput{
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the session identified by the refresh token. Unknown tokens
// are ignored so logout stays idempotent.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	err := srv.refreshTokenRepo.DeleteByHash(ctx, hashToken(input.RefreshToken))
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

func (srv *userService) issueTokens(ctx context.Context, user *entity.User) (string, string, error) {
	var vendorID *uuid.UUID
	if user.Vendor != nil {
		id := user.Vendor.ID
		vendorID = &id
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Role, vendorID)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.Create(ctx, session); err != nil {
		return "", "", errors.Wrap(err, "failed to store refresh token")
	}

	return accessToken, refreshToken, nil
}

// hashToken derives the storage key for a refresh token. Only the digest is
// ever persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
