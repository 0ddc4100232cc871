package pkg

import "testing"

func TestInitJWTRequiresSecrets(t *testing.T) {
	if err := InitJWT("", "refresh"); err != ErrSecretsMissing {
		t.Errorf("InitJWT with empty access secret = %v; want ErrSecretsMissing", err)
	}
	if err := InitJWT("access", ""); err != ErrSecretsMissing {
		t.Errorf("InitJWT with empty refresh secret = %v; want ErrSecretsMissing", err)
	}
}

func TestGenerateAndParseRoundTrip(t *testing.T) {
	if err := InitJWT("test-access-secret", "test-refresh-secret"); err != nil {
		t.Fatalf("InitJWT: %v", err)
	}

	pair, err := GeneratePair(42, 1)
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}

	claims, err := ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UserID != 42 || claims.Role != 1 {
		t.Errorf("claims = %+v; want user 42 role 1", claims)
	}

	// a refresh token is not an access token
	if _, err := ParseAccess(pair.RefreshToken); err == nil {
		t.Error("ParseAccess accepted a refresh token")
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	if err := InitJWT("test-access-secret", "test-refresh-secret"); err != nil {
		t.Fatalf("InitJWT: %v", err)
	}

	pair, err := GeneratePair(7, 0)
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}

	next, err := Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := ParseAccess(next.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("refreshed claims user = %d; want 7", claims.UserID)
	}

	// an access token cannot be used to refresh
	if _, err := Refresh(pair.AccessToken); err == nil {
		t.Error("Refresh accepted an access token")
	}
}
