package identity

import (
	"context"
	"strings"

	"github.com/datamark/backend/internal/domain/identity"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/datamark/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication use cases
type AuthService struct {
	userRepo   identity.UserRepository
	storeRepo  identity.StoreRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	storeRepo identity.StoreRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// errInvalidCredentials is returned for any credential failure. Unknown
// email and wrong password are indistinguishable to the caller.
var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.logger.Info("login attempt", zap.String("email", email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed, user not found", zap.String("email", email))
		return nil, errInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("login failed, wrong password", zap.String("email", email))
		return nil, errInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("login rejected, user disabled", zap.String("email", email))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	store, err := s.storeRepo.FindByID(ctx, user.StoreID)
	if err != nil {
		s.logger.Error("login failed, store lookup", zap.String("email", email), zap.Error(err))
		return nil, errInvalidCredentials
	}
	if !store.IsActive {
		s.logger.Warn("login rejected, store disabled",
			zap.String("email", email),
			zap.String("store_id", store.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Store is disabled")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		StoreID: user.StoreID,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    string(user.Role),
	})
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate tokens")
	}

	// Best effort: a failed timestamp update must not block the login
	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("login succeeded",
		zap.String("user_id", user.ID.String()),
		zap.String("store_id", user.StoreID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  ToUserInfo(user, store),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	store, err := s.storeRepo.FindByID(ctx, user.StoreID)
	if err != nil || !store.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Store is disabled")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email, string(user.Role))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  ToUserInfo(user, store),
	}, nil
}
