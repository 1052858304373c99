package security_test

import (
	"testing"

	"github.com/beamcollective/portal-api/internal/security"
)

func TestNewConfirmationToken(t *testing.T) {
	token, err := security.NewConfirmationToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if len(token) != 64 {
		t.Errorf("token length: got %d, want 64", len(token))
	}

	for _, c := range token {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("token contains non-hex character %q", c)
		}
	}

	other, err := security.NewConfirmationToken()
	if err != nil {
		t.Fatalf("failed to generate second token: %v", err)
	}
	if token == other {
		t.Error("two generated tokens are identical")
	}
}

func TestTokenEqual(t *testing.T) {
	if !security.TokenEqual("abc123", "abc123") {
		t.Error("identical tokens compare unequal")
	}
	if security.TokenEqual("abc123", "abc124") {
		t.Error("different tokens compare equal")
	}
	if security.TokenEqual("abc", "abc123") {
		t.Error("tokens of different length compare equal")
	}
	if security.TokenEqual("", "") == false {
		t.Error("empty tokens should compare equal")
	}
}
