package jwt

import "testing"

func TestAccessTokenRoundTrip(t *testing.T) {
	Init("test-secret-at-least-32-characters!!", "critter_crew", 30, 168)

	token, err := GenerateAccessToken("U123")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "U123" {
		t.Fatalf("UserID = %q, want U123", claims.UserID)
	}
	if claims.Subject != "access_token" {
		t.Fatalf("Subject = %q, want access_token", claims.Subject)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	Init("test-secret-at-least-32-characters!!", "critter_crew", 30, 168)

	token, err := GenerateAccessToken("U123")
	if err != nil {
		t.Fatal(err)
	}

	Init("another-secret-entirely-differs-here", "critter_crew", 30, 168)
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected signature validation failure after secret change")
	}
}

func TestIssuerFromConfig(t *testing.T) {
	Init("test-secret-at-least-32-characters!!", "my_service", 30, 168)

	token, err := GenerateAccessToken("U123")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Issuer != "my_service" {
		t.Fatalf("Issuer = %q, want my_service", claims.Issuer)
	}

	// 换了签发方标识后，旧 iss 的 token 不再通过校验
	Init("test-secret-at-least-32-characters!!", "other_service", 30, 168)
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected issuer validation failure after issuer change")
	}
}
