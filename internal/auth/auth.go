// Package auth implements the single shared-password session gate. A
// successful login sets an HMAC-signed HTTP-only cookie; there are no user
// accounts, so the signed subject is the session issue time rather than a
// user id.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type ctxKey string

const (
	sessionCookieName = "auth"
	sessionCtxKey     = ctxKey("authenticated")

	sessionTTL = 7 * 24 * time.Hour
)

// Secret returns SESSION_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed session cookie.
func CreateSession(w http.ResponseWriter) {
	issued := strconv.FormatInt(time.Now().Unix(), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    issued + "." + sign(issued),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
}

// ParseSession validates the cookie signature and expiry.
func ParseSession(r *http.Request) bool {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return false
	}
	issuedStr, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(issuedStr))) {
		return false
	}
	issued, err := strconv.ParseInt(issuedStr, 10, 64)
	if err != nil {
		return false
	}
	return time.Since(time.Unix(issued, 0)) < sessionTTL
}

// WithAuthenticated marks the context as holding a valid session.
func WithAuthenticated(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionCtxKey, true)
}

// Authenticated reports whether the request context holds a valid session.
func Authenticated(ctx context.Context) bool {
	v, _ := ctx.Value(sessionCtxKey).(bool)
	return v
}

// Middleware attaches the session state to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ParseSession(r) {
			r = r.WithContext(WithAuthenticated(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid session with a 401 JSON body.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Authenticated(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			if _, err := w.Write([]byte(`{"error":"unauthorized"}`)); err != nil {
				_ = err
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
