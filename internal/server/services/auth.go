// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, and issuing/refreshing
// JWT pairs with server-stored, single-use refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new pairs
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	issuer                       *auth.TokenIssuer
	bcryptCost                   int
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories, the token
// issuer, and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.TokenIssuer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		issuer:                       issuer,
		bcryptCost:                   cfg.BCryptCost,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt-hashed password. A taken email
// yields common.ErrorAlreadyExists whether it is detected by the lookup or
// by the store's uniqueness constraint.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetUserByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the credentials and, on success, mints a token pair and
// stores the refresh token. An unknown email and a wrong password both
// yield common.ErrorUnauthorized so account existence is not leaked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, s.db, user.ID, user.Username, user.Email)
}

// Refresh validates a presented refresh token and rotates it: the old record
// is deleted and a new pair is minted and stored, inside one transaction.
// A token absent from the store yields common.ErrorNotFound; a token that
// fails signature or expiry verification yields common.ErrInvalidToken or
// common.ErrRefreshTokenExpired.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrMissingToken
	}

	repo := s.repomanager.RefreshTokens(s.db)

	if _, err := repo.Find(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	var pair *auth.TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, tx, claims.UserID, claims.Username, claims.Email)
		return genErr
	}); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID, username, email string) (*auth.TokenPair, error) {
	pair, err := s.issuer.Issue(userID, username, email)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshRepo := s.repomanager.RefreshTokens(db)
	if err := refreshRepo.Create(ctx, userID, pair.RefreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return pair, nil
}
