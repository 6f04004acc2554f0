package auth

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth" {
			return c
		}
	}
	return nil
}

func TestSessionCookieFormat(t *testing.T) {
	rr := httptest.NewRecorder()
	CreateSession(rr)
	c := sessionCookie(rr)
	if c == nil {
		t.Fatalf("missing auth cookie")
	}
	if !regexp.MustCompile(`^[0-9]+\.[A-Za-z0-9_-]+$`).MatchString(c.Value) {
		t.Fatalf("bad cookie format: %s", c.Value)
	}
	if !c.HttpOnly {
		t.Fatalf("cookie must be HTTP-only")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be SameSite strict")
	}
}

func TestParseSessionRoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	CreateSession(rr)
	c := sessionCookie(rr)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if !ParseSession(req) {
		t.Fatalf("fresh session rejected")
	}
}

func TestParseSessionRejectsTampering(t *testing.T) {
	rr := httptest.NewRecorder()
	CreateSession(rr)
	c := sessionCookie(rr)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: c.Value + "x"})
	if ParseSession(req) {
		t.Fatalf("tampered signature accepted")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: "0.forged"})
	if ParseSession(req) {
		t.Fatalf("forged cookie accepted")
	}
}

func TestParseSessionMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if ParseSession(req) {
		t.Fatalf("no cookie must not authenticate")
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	ClearSession(rr)
	c := sessionCookie(rr)
	if c == nil {
		t.Fatalf("missing cleared cookie")
	}
	if c.MaxAge >= 0 || c.Value != "" {
		t.Fatalf("cookie not invalidated: %+v", c)
	}
}

func TestRequireAuthWithoutSession(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}
