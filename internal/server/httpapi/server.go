// Package httpapi exposes the authentication service over REST/JSON:
// registration, login, refresh-token rotation, and a token-guarded
// demonstration endpoint.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// AuthProvider is the slice of the auth service the transport needs.
type AuthProvider interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

// AccessVerifier validates inbound access tokens for the guard middleware.
// *auth.TokenIssuer satisfies it.
type AccessVerifier interface {
	VerifyAccess(tokenString string) (*auth.Claims, error)
}

var _ AccessVerifier = (*auth.TokenIssuer)(nil)

type Server struct {
	address  string
	logger   logging.Logger
	auth     AuthProvider
	verifier AccessVerifier
}

func NewServer(address string, logger logging.Logger, authService AuthProvider, verifier AccessVerifier) *Server {
	return &Server{
		address:  address,
		logger:   logger.With("module", "httpapi"),
		auth:     authService,
		verifier: verifier,
	}
}

// Handler builds the route table. Exposed separately from Run so tests can
// drive the full middleware/handler chain with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.Handle("GET /api/auth/protected", s.requireAccessToken(http.HandlerFunc(s.handleProtected)))

	return s.withRequestID(mux)
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
