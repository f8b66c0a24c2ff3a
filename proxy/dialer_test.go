package proxy

import "testing"

func containsAuth(methods []authMethod, m authMethod) bool {
	for _, a := range methods {
		if a == m {
			return true
		}
	}
	return false
}

func TestNewDialerAuthMethods(t *testing.T) {
	d := NewDialer(&Config{Address: "proxy:1080"})
	if !containsAuth(d.authMethods, authNotRequired) {
		t.Fatal("expected authNotRequired always offered")
	}
	if containsAuth(d.authMethods, authJWT) || containsAuth(d.authMethods, authBasic) {
		t.Fatal("expected no credential methods offered without JWT/User configured")
	}

	d = NewDialer(&Config{Address: "proxy:1080", JWTToken: "tok"})
	if !containsAuth(d.authMethods, authJWT) {
		t.Fatal("expected authJWT offered when JWTToken set")
	}

	d = NewDialer(&Config{Address: "proxy:1080", User: "scott"})
	if !containsAuth(d.authMethods, authBasic) {
		t.Fatal("expected authBasic offered when User set")
	}
}

func TestReplyString(t *testing.T) {
	if replySucceeded.String() != "succeeded" {
		t.Fatalf("replySucceeded.String() = %q", replySucceeded.String())
	}
	if reply(0xEE).String() != "unknown reply code" {
		t.Fatalf("unexpected default for unknown reply code")
	}
}

func TestSplitHostPort(t *testing.T) {
	host, port, err := splitHostPort("example.com:1080")
	if err != nil || host != "example.com" || port != 1080 {
		t.Fatalf("splitHostPort = %q, %d, %v", host, port, err)
	}
	if _, _, err := splitHostPort("example.com:999999"); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
