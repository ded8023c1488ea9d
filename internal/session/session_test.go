package session

import (
	"errors"
	"testing"
	"time"

	"driveu/internal/domain"
)

func newTestIssuer(now time.Time) *Issuer {
	i := NewIssuer("test-secret", time.Hour, 30*24*time.Hour)
	i.now = func() time.Time { return now }
	return i
}

func TestIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(now)

	token, issued, err := issuer.Issue("user-1", domain.RoleDriver, "Ravi", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.UserID != "user-1" || got.Role != domain.RoleDriver || got.Name != "Ravi" {
		t.Errorf("unexpected session %+v", got)
	}
	if !got.IsDriver() || got.IsOwner() {
		t.Errorf("role helpers disagree with role %s", got.Role)
	}
	if !got.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Errorf("expiry mismatch: issued %v, parsed %v", issued.ExpiresAt, got.ExpiresAt)
	}
	if !got.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expected one hour expiry, got %v", got.ExpiresAt)
	}
}

func TestIssuer_RememberMeExtendsExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(now)

	_, sess, err := issuer.Issue("user-1", domain.RoleOwner, "Asha", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if want := now.Add(30 * 24 * time.Hour); !sess.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, sess.ExpiresAt)
	}
}

func TestIssuer_RejectsExpiredToken(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(now)

	token, _, err := issuer.Issue("user-1", domain.RoleOwner, "Asha", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_RejectsForeignSignature(t *testing.T) {
	now := time.Now()
	token, _, err := newTestIssuer(now).Issue("user-1", domain.RoleOwner, "Asha", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewIssuer("another-secret", time.Hour, time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := other.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}
