package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("geheim123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "geheim123" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "geheim123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "falsch") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := MakeToken(7, "thomas", "secret")
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	claims, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("user id: got %d want 7", claims.UserID)
	}
	if claims.Username != "thomas" {
		t.Errorf("username: got %s", claims.Username)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := MakeToken(7, "thomas", "secret")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", "secret"); err == nil {
		t.Error("garbage must not parse")
	}
	if _, err := ParseToken("", "secret"); err == nil {
		t.Error("empty token must not parse")
	}
}
