package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/adapters/persistence/repositories"
	"fitconnect/internal/config"
	"fitconnect/internal/core/domain"
	"fitconnect/internal/core/session"
	"fitconnect/internal/pkg/jwt"
	"fitconnect/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	trainerRepo      repositories.TrainerRepository
	memberRepo       repositories.MemberRepository
	membershipRepo   repositories.MembershipRepository
	sessions         *session.Authority
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	trainerRepo repositories.TrainerRepository,
	memberRepo repositories.MemberRepository,
	membershipRepo repositories.MembershipRepository,
	sessions *session.Authority,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		trainerRepo:      trainerRepo,
		memberRepo:       memberRepo,
		membershipRepo:   membershipRepo,
		sessions:         sessions,
		cfg:              cfg,
	}
}

// LoginInput represents login input. Role is the portal the caller logged
// in from; a valid password under the wrong role still fails.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Login authenticates a user against the given role and establishes the
// session. Unknown username, wrong password, wrong role, inactive account
// and lapsed membership all fail the same way so the response does not
// leak which check tripped.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Validate the requested role
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// 2. Find an active user under that exact username and role
	user, err := s.userRepo.GetActiveByUsernameAndRole(ctx, input.Username, role.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Resolve the role profile and run role-specific gates
	identity := domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
		Email:    user.Email,
		Phone:    user.Phone,
	}
	switch role {
	case domain.RoleTrainer:
		trainer, err := s.trainerRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrInvalidCredentials
			}
			return nil, err
		}
		identity.FullName = trainer.FullName
		identity.ProfileID = trainer.ID
	case domain.RoleMember:
		member, err := s.memberRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrInvalidCredentials
			}
			return nil, err
		}
		// Members need a paid-up membership to get in
		active, err := s.membershipRepo.HasActiveOn(ctx, member.ID, time.Now())
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, domain.ErrInvalidCredentials
		}
		identity.FullName = member.FullName
		identity.ProfileID = member.ID
	case domain.RoleAdmin:
		identity.FullName = user.Username
	}

	// 5. Establish the session
	if err := s.sessions.Establish(ctx, identity); err != nil {
		return nil, err
	}

	// 6. Generate tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 7. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 8. Build response
	userResponse := user.ToResponse()
	userResponse.FullName = identity.FullName
	userResponse.ProfileID = identity.ProfileID

	log.Printf("✅ User logged in: %s [%s]", user.Username, role)

	return &AuthResponse{
		User:         userResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	// 4. Check if token is revoked or expired
	if storedToken.IsRevoked() {
		return nil, domain.ErrTokenInvalid
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 5. Get user and re-check status
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if user.Status != models.UserStatusActive {
		return nil, domain.ErrTokenInvalid
	}

	// 6. Revoke old refresh token (Token Rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 7. Generate new tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 8. Store new refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token and tears down the session
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		tokenHash := password.HashToken(refreshToken)
		if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
			return err
		}
	}

	if err := s.sessions.Logout(ctx); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.sessions.Logout(ctx); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// CurrentSession returns the identity of the established session
func (s *AuthService) CurrentSession(ctx context.Context) (*domain.Identity, error) {
	return s.sessions.Current(ctx)
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// generateTokens generates an access/refresh token pair
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken hashes and stores a refresh token
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
