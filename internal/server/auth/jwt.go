// Package auth implements token issuance and verification for the server:
// signed access/refresh token pairs (HS256) carrying the user identity
// claims, plus password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload embedded in both access and refresh
// tokens: email, id, username. No roles or scopes are modeled.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer signs and verifies token pairs. Access and refresh tokens use
// distinct secrets and distinct validity durations, both configured
// externally.
type TokenIssuer struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret []byte, accessValidity, refreshValidity time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:    accessSecret,
		refreshSecret:   refreshSecret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// Issue produces a signed access/refresh token pair for the given identity.
// It has no side effects; a signing failure indicates a broken secret
// configuration and is not a recoverable runtime condition.
func (i *TokenIssuer) Issue(userID, username, email string) (*TokenPair, error) {
	access, err := generateToken(userID, username, email, i.accessSecret, i.accessValidity)
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(userID, username, email, i.refreshSecret, i.refreshValidity)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks signature and expiry against the access secret and
// returns the embedded claims.
func (i *TokenIssuer) VerifyAccess(tokenString string) (*Claims, error) {
	return parseToken(tokenString, i.accessSecret)
}

// VerifyRefresh checks signature and expiry against the refresh secret and
// returns the embedded claims. An expired token yields
// common.ErrRefreshTokenExpired so callers can distinguish it from an
// expired access token.
func (i *TokenIssuer) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := parseToken(tokenString, i.refreshSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, err
	}
	return claims, nil
}

func generateToken(userID, username, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func parseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
