package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

const invalidCredentialsMessage = "invalid email or password"

// SessionStore remembers revoked token ids until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, tokenId string, until time.Time) error
	IsRevoked(ctx context.Context, tokenId string) (bool, error)
}

type AuthService struct {
	users    models.UserRepository
	jwt      *utils.JwtManager
	sessions SessionStore
	clock    utils.Clock
}

func NewAuthService(users models.UserRepository, jwt *utils.JwtManager, sessions SessionStore, clock utils.Clock) *AuthService {
	return &AuthService{users: users, jwt: jwt, sessions: sessions, clock: clock}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Authenticate fails with the same Unauthorized message for an unknown email and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email string, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, utils.NewUnauthorizedError(invalidCredentialsMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if err := utils.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, utils.NewUnauthorizedError(invalidCredentialsMessage)
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, *utils.JwtCustomClaim, error) {
	return s.jwt.JwtGenerate(user.ID, string(user.Role), s.clock.Now())
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, claims, err := s.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAtTime(), User: user}, nil
}

// ResolveToken turns a credential into the user it belongs to. Every failure is Unauthorized.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, *utils.JwtCustomClaim, error) {
	if token == "" {
		return nil, nil, utils.NewUnauthorizedError("")
	}
	claims, err := s.jwt.JwtValidate(token)
	if err != nil {
		return nil, nil, utils.NewUnauthorizedError("invalid or expired token")
	}
	if s.sessions != nil {
		revoked, err := s.sessions.IsRevoked(ctx, claims.Id)
		if err != nil {
			return nil, nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, nil, utils.NewUnauthorizedError("token has been revoked")
		}
	}
	user, err := s.users.FindById(ctx, claims.ID)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, nil, utils.NewUnauthorizedError("invalid or expired token")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find user %d: %w", claims.ID, err)
	}
	return user, claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *utils.JwtCustomClaim) error {
	if claims == nil || s.sessions == nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.Id, claims.ExpiresAtTime())
}
