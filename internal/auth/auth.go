// Package auth extracts the acting user from bearer tokens issued by the
// identity provider. It only verifies and decodes; user management lives
// elsewhere.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey struct{}

var userKey contextKey

// UserID returns the authenticated user id stored in the request context,
// or uuid.Nil when the request was not authenticated.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userKey).(uuid.UUID)
	return id
}

// WithUserID returns a context carrying the given user id. Exported for tests
// and for the TUI, which authenticates out of band.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// Verifier validates bearer tokens and resolves the subject claim to a user id.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// ParseSubject verifies the token signature and returns the subject as a uuid.
func (v *Verifier) ParseSubject(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading subject: %w", err)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing subject: %w", err)
	}

	return id, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// acting user id in the request context.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		id, err := v.ParseSubject(tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}
