package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerResponse struct {
	Message string      `json:"message"`
	User    userSummary `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "JWT Auth Server with PostgreSQL")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.writeError(ctx, w, http.StatusBadRequest, "user already exists")
			return
		}
		s.logger.Error(ctx, "registration failed", "error", err.Error())
		s.writeError(ctx, w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.logger.Info(ctx, "user registered", "username", user.Username)
	s.writeJSON(ctx, w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    userSummary{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.writeError(ctx, w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(ctx, "login failed", "error", err.Error())
		s.writeError(ctx, w, http.StatusInternalServerError, "login failed")
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// a body that does not decode is treated as an absent token
	var req refreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	pair, err := s.auth.Refresh(ctx, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingToken):
			s.writeError(ctx, w, http.StatusUnauthorized, "missing token")
		case errors.Is(err, common.ErrorNotFound):
			s.writeError(ctx, w, http.StatusForbidden, "unknown token")
		case errors.Is(err, common.ErrInvalidToken),
			errors.Is(err, common.ErrTokenExpired),
			errors.Is(err, common.ErrRefreshTokenExpired):
			s.writeError(ctx, w, http.StatusForbidden, "invalid token")
		default:
			s.logger.Error(ctx, "token refresh failed", "error", err.Error())
			s.writeError(ctx, w, http.StatusInternalServerError, "token refresh failed")
		}
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		// guard always runs first; reaching here without claims is a wiring bug
		s.writeError(ctx, w, http.StatusForbidden, "invalid token")
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Hello %s, this is a protected route!", claims.Username),
	})
}
