package services

import (
	"context"
	"errors"
	"log"
	"time"

	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/adapters/persistence/repositories"
	"simplekyc/internal/config"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/guard"
	"simplekyc/internal/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService handles login, session hydration and logout
type SessionService struct {
	directory DirectoryClient
	tokenRepo repositories.SessionTokenRepository
	cfg       *config.Config
}

// NewSessionService creates a new session service
func NewSessionService(
	directory DirectoryClient,
	tokenRepo repositories.SessionTokenRepository,
	cfg *config.Config,
) *SessionService {
	return &SessionService{
		directory: directory,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User        *domain.UserRecord `json:"user"`
	AccessToken string             `json:"access_token"`
	RedirectTo  string             `json:"redirect_to"`
}

// Login authenticates against the directory and mints a local session.
// Credentials are never checked locally: the directory owns them.
func (s *SessionService) Login(ctx context.Context, input *LoginInput) (*LoginResponse, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Forward credentials to the directory
	result, err := s.directory.Login(input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	// 2. Resolve the profile behind the directory token
	profile, err := s.directory.Me(result.AccessToken)
	if err != nil {
		return nil, err
	}

	// 3. Map the directory role onto our two-role model
	user := &domain.UserRecord{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Gender:    profile.Gender,
		Image:     profile.Image,
		Role:      domain.RoleFromDirectory(profile.Role),
	}

	// 4. Mint our own access token; the directory token is discarded
	tokenID := uuid.New().String()
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		string(user.Role),
		tokenID,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	// 5. Record the session so logout can revoke it
	token := &models.SessionToken{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		TokenID:   tokenID,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.JWT.AccessTokenMins) * time.Minute),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// 6. Compute the role-based landing route
	session := domain.NewSession(accessToken, user)

	log.Printf("✅ User logged in: %s [role: %s]", user.Username, user.Role)

	return &LoginResponse{
		User:        user,
		AccessToken: accessToken,
		RedirectTo:  guard.DefaultLanding(session),
	}, nil
}

// Hydrate rebuilds a session from a bearer token. A token that fails
// validation, was revoked, or has expired yields an anonymous session
// with ErrUnauthorized, never a panic.
func (s *SessionService) Hydrate(ctx context.Context, tokenString string) (domain.Session, error) {
	if tokenString == "" {
		return domain.AnonymousSession(), domain.ErrUnauthorized
	}

	// 1. Validate signature and expiry
	claims, err := jwt.ValidateAccessToken(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		return domain.AnonymousSession(), domain.ErrUnauthorized
	}

	// 2. The session row must still exist and be unrevoked
	stored, err := s.tokenRepo.GetByTokenID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AnonymousSession(), domain.ErrUnauthorized
		}
		return domain.AnonymousSession(), err
	}
	if stored.IsExpired() {
		return domain.AnonymousSession(), domain.ErrUnauthorized
	}

	// 3. Refresh the profile from the directory. An outage degrades to
	// the claims we already verified rather than killing the session.
	user := &domain.UserRecord{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     domain.Role(claims.Role),
	}
	if profile, err := s.directory.GetUser(claims.UserID); err == nil {
		user.Email = profile.Email
		user.FirstName = profile.FirstName
		user.LastName = profile.LastName
		user.Gender = profile.Gender
		user.Image = profile.Image
	}

	return domain.NewSession(tokenString, user), nil
}

// Logout revokes the session behind the token. An already-invalid
// token is not an error: the caller ends up logged out either way.
func (s *SessionService) Logout(ctx context.Context, tokenString string) error {
	claims, err := jwt.ValidateAccessToken(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		return nil
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID); err != nil {
		return err
	}

	log.Printf("✅ User logged out: %s", claims.Username)
	return nil
}

// LogoutAll revokes every live session of the user behind the token
// (logout everywhere). Like Logout, an invalid token is not an error.
func (s *SessionService) LogoutAll(ctx context.Context, tokenString string) error {
	claims, err := jwt.ValidateAccessToken(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		return nil
	}

	if err := s.tokenRepo.RevokeAllByUserID(ctx, claims.UserID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user: %s", claims.Username)
	return nil
}

// PruneExpiredTokens deletes session rows expired longer than the
// configured retention (cleanup job)
func (s *SessionService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpiredBefore(ctx, s.cfg.Session.TokenRetentionDays)
}
