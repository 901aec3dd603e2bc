package services

import (
	"context"
	"errors"
	"fmt"

	"nanolink/auth"
	"nanolink/models"
	"nanolink/store"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is deliberately the same for an unknown email and
	// a wrong password, so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("link belongs to another user")
)

// Credentials is what a successful register, login or refresh hands back.
// The refresh token travels in a cookie, never in the JSON body.
type Credentials struct {
	Token            string `json:"token"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshToken     string `json:"-"`
	RefreshExpiresIn int    `json:"-"`
}

type AuthService struct {
	users  store.UserStore
	tokens *auth.TokenService
}

func NewAuthService(users store.UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a hashed password and signs them in. The
// store's unique index decides duplicate emails, so two concurrent
// registrations with the same address cannot both succeed.
func (s *AuthService) Register(ctx context.Context, email, password string) (Credentials, error) {
	user := models.User{Email: models.NormalizeEmail(email)}
	if err := user.SetPassword(password); err != nil {
		return Credentials{}, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return Credentials{}, ErrEmailTaken
		}
		return Credentials{}, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Credentials, error) {
	user, err := s.users.GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Credentials{}, ErrInvalidCredentials
		}
		return Credentials{}, fmt.Errorf("get user: %w", err)
	}

	ok, err := user.CheckPassword(password)
	if err != nil {
		return Credentials{}, fmt.Errorf("stored password hash for user %d is unreadable: %w", user.ID, err)
	}
	if !ok {
		return Credentials{}, ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// Refresh mints a new access token for a subject whose refresh token was
// already verified by the middleware. The refresh token itself is not
// rotated.
func (s *AuthService) Refresh(userID uint) (Credentials, error) {
	token, expiresIn, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return Credentials{}, fmt.Errorf("issue access token: %w", err)
	}
	return Credentials{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(userID uint) (Credentials, error) {
	token, expiresIn, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return Credentials{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return Credentials{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return Credentials{
		Token:            token,
		ExpiresIn:        expiresIn,
		RefreshToken:     refresh,
		RefreshExpiresIn: int(s.tokens.RefreshTTL().Seconds()),
	}, nil
}
