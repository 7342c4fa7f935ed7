package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("access-secret"), []byte("refresh-secret"), time.Hour, 2*time.Hour)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	i := newTestIssuer()

	pair, err := i.Issue("user-123", "alice", "a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	claims, err := i.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Username != "alice" || claims.Email != "a@x.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	claims, err = i.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("refresh claims mismatch: %+v", claims)
	}
}

func TestVerify_CrossSecretRejected(t *testing.T) {
	t.Parallel()

	i := newTestIssuer()

	pair, err := i.Issue("u1", "bob", "b@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// access token must not verify as a refresh token and vice versa
	if _, err := i.VerifyRefresh(pair.AccessToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token under refresh secret, got %v", err)
	}
	if _, err := i.VerifyAccess(pair.RefreshToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token under access secret, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	i := NewTokenIssuer([]byte("a"), []byte("r"), -1*time.Second, -1*time.Second)

	pair, err := i.Issue("u1", "bob", "b@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := i.VerifyAccess(pair.AccessToken); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, err := i.VerifyRefresh(pair.RefreshToken); !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	i := newTestIssuer()
	other := NewTokenIssuer([]byte("not-the-access-secret"), []byte("not-the-refresh-secret"), time.Hour, time.Hour)

	pair, err := other.Issue("u2", "eve", "e@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := i.VerifyAccess(pair.AccessToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	i := newTestIssuer()

	if _, err := i.VerifyAccess("not.a.jwt"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
