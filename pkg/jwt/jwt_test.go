package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id, "meera@maitri.test", "Meera", "SUPER_ADMIN")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != id || claims.RoleCode != "SUPER_ADMIN" || claims.Name != "Meera" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, _ := m.GenerateToken(uuid.New(), "a@b.c", "A", "ADMIN")

	if _, err := NewManager("other-secret", time.Hour).ValidateToken(token); err != ErrInvalidToken {
		t.Fatalf("wrong secret err = %v", err)
	}
	if _, err := m.ValidateToken("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("garbage err = %v", err)
	}

	expired := &Manager{secret: []byte("test-secret"), ttl: -time.Minute}
	old, _ := expired.GenerateToken(uuid.New(), "a@b.c", "A", "ADMIN")
	if _, err := m.ValidateToken(old); err != ErrInvalidToken {
		t.Fatalf("expired err = %v", err)
	}
}
