package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// secret, expired token, garbage input. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens. The two kinds
// use distinct secrets, so a leaked access token can never stand in for a
// refresh token or the other way around.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken returns a signed token for userID and its lifetime in
// seconds, ready for the {token, expiresIn} response body.
func (ts *TokenService) IssueAccessToken(userID uint) (string, int, error) {
	token, err := ts.sign(userID, ts.accessSecret, ts.accessTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(ts.accessTTL.Seconds()), nil
}

func (ts *TokenService) IssueRefreshToken(userID uint) (string, error) {
	return ts.sign(userID, ts.refreshSecret, ts.refreshTTL)
}

// RefreshTTL is the refresh token lifetime; the cookie expiry must match it.
func (ts *TokenService) RefreshTTL() time.Duration {
	return ts.refreshTTL
}

func (ts *TokenService) VerifyAccessToken(token string) (uint, error) {
	return ts.verify(token, ts.accessSecret)
}

func (ts *TokenService) VerifyRefreshToken(token string) (uint, error) {
	return ts.verify(token, ts.refreshSecret)
}

func (ts *TokenService) sign(userID uint, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (ts *TokenService) verify(tokenString string, secret []byte) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
