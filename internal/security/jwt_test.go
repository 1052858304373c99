package security_test

import (
	"testing"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/security"
)

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)

	token, err := manager.Generate("user-1", "test@example.com", domain.RoleMusician)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("token is empty")
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("user ID mismatch: got %v, want user-1", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("email mismatch: got %v", claims.Email)
	}
	if claims.Role != domain.RoleMusician {
		t.Errorf("role mismatch: got %v", claims.Role)
	}
	if !claims.Musician {
		t.Error("musician flag not set")
	}
	if claims.Admin {
		t.Error("admin flag should not be set for musician")
	}
}

func TestJWTManager_AdminImpliesAll(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)

	token, err := manager.Generate("user-1", "admin@example.com", domain.RoleBeamAdmin)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	for _, cap := range []domain.Capability{
		domain.CapabilityAdmin,
		domain.CapabilityBoard,
		domain.CapabilityMusician,
		domain.CapabilitySubscriber,
	} {
		if !claims.HasCapability(cap) {
			t.Errorf("admin token lacks capability %v", cap)
		}
	}
}

func TestJWTManager_HasCapabilityFallsBackToRole(t *testing.T) {
	// A token minted without flags must still authorize via the role tag.
	claims := &security.Claims{Role: domain.RoleBoard}

	if !claims.HasCapability(domain.CapabilityBoard) {
		t.Error("board role without flags should grant board capability")
	}
	if claims.HasCapability(domain.CapabilityAdmin) {
		t.Error("board role should not grant admin capability")
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)
	other := security.NewJWTManager("another-secret-key-entirely!!!!!", time.Hour)

	token, err := manager.Generate("user-1", "test@example.com", domain.RoleAudience)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute)

	token, err := manager.Generate("user-1", "test@example.com", domain.RoleAudience)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestJWTManager_Configured(t *testing.T) {
	if security.NewJWTManager("", time.Hour).Configured() {
		t.Error("manager with empty secret reports configured")
	}
	if !security.NewJWTManager("secret", time.Hour).Configured() {
		t.Error("manager with secret reports unconfigured")
	}
}
