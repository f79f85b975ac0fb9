package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"bytebabies/internal/models"
	"bytebabies/internal/repository"
	"bytebabies/internal/security"
	"bytebabies/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in")
)

// Credential is the result of a successful sign-in or sign-up
type Credential struct {
	UID       string
	Token     string
	ExpiresAt time.Time
}

// Authenticator is the authentication half of the backend store
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Credential, error)
	SignUp(ctx context.Context, email, password string) (Credential, error)
	SignOut(ctx context.Context, token string) error
	CurrentUID(ctx context.Context, token string) (string, error)
}

// AuthConfig holds the token settings
type AuthConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// AuthService authenticates accounts stored in the document store and issues
// access tokens tracked by a TokenStore
type AuthService struct {
	accounts *repository.AccountRepository
	tokens   security.TokenStore
	cfg      AuthConfig

	// serialises the email uniqueness check with the insert
	signUpMu sync.Mutex
}

// NewAuthService creates a new auth service
func NewAuthService(accounts *repository.AccountRepository, tokens security.TokenStore, cfg AuthConfig) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, cfg: cfg}
}

// SignUp creates an account and signs it in
func (s *AuthService) SignUp(ctx context.Context, email, password string) (Credential, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return Credential{}, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return Credential{}, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.signUpMu.Lock()
	existing, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		s.signUpMu.Unlock()
		return Credential{}, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		s.signUpMu.Unlock()
		return Credential{}, ErrEmailTaken
	}
	account := &models.Account{Email: strings.TrimSpace(email), PasswordHash: passwordHash}
	err = s.accounts.CreateAccount(ctx, account)
	s.signUpMu.Unlock()
	if err != nil {
		return Credential{}, err
	}

	return s.issue(ctx, account.UID)
}

// SignIn verifies the password and issues a token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Credential, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || !security.CheckPassword(password, account.PasswordHash) {
		return Credential{}, ErrInvalidCredentials
	}
	return s.issue(ctx, account.UID)
}

// SignOut revokes the token. Unknown or malformed tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := security.ParseAccessToken(s.cfg.Secret, token)
	if err != nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// CurrentUID returns the uid behind a signed-in token
func (s *AuthService) CurrentUID(ctx context.Context, token string) (string, error) {
	claims, err := security.ParseAccessToken(s.cfg.Secret, token)
	if err != nil {
		return "", ErrNotSignedIn
	}
	uid, ok, err := s.tokens.Lookup(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}
	if !ok || uid != claims.UID {
		return "", ErrNotSignedIn
	}
	return uid, nil
}

func (s *AuthService) issue(ctx context.Context, uid string) (Credential, error) {
	token, claims, err := security.NewAccessToken(s.cfg.Secret, s.cfg.Issuer, uid, s.cfg.TokenTTL)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to sign token: %w", err)
	}
	if err := s.tokens.Register(ctx, claims.ID, uid, s.cfg.TokenTTL); err != nil {
		return Credential{}, fmt.Errorf("failed to register token: %w", err)
	}
	return Credential{UID: uid, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
