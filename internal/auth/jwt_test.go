package auth

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := GenerateToken("staff-1", "cashier@example.com", RoleCashier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	staffID, email, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if staffID != "staff-1" || email != "cashier@example.com" || role != RoleCashier {
		t.Errorf("claims mismatch: %s %s %s", staffID, email, role)
	}
}

func TestGenerateToken_EmptyStaffID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	if _, err := GenerateToken("", "cashier@example.com", RoleCashier); err == nil {
		t.Fatal("expected error for empty staffID")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	if _, _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
