package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tair/pos-ledger/pkg/logger"
)

type userIDKey struct{}

type authenticatedKey struct{}

// ErrUserMismatch is returned when a request names a user other than the
// token subject
var ErrUserMismatch = errors.New("user_id does not match the authenticated user")

// WithUserID stores the caller identity in ctx
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// WithAuthenticatedUserID stores an identity taken from a verified token
func WithAuthenticatedUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(WithUserID(ctx, userID), authenticatedKey{}, true)
}

// UserID returns the caller identity, empty when none was resolved
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// Authenticated reports whether the identity in ctx came from a verified token
func Authenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedKey{}).(bool)
	return ok
}

// EffectiveUserID picks the user an operation acts for. A token subject
// wins and a different requested user is rejected; otherwise the requested
// user falls back to the header identity.
func EffectiveUserID(ctx context.Context, requested string) (string, error) {
	if Authenticated(ctx) {
		subject := UserID(ctx)
		if requested != "" && requested != subject {
			return "", ErrUserMismatch
		}
		return subject, nil
	}
	if requested != "" {
		return requested, nil
	}
	return UserID(ctx), nil
}

// Identity resolves the caller. With a secret it requires an HS256 bearer
// token and takes the sub claim; without one it trusts X-User-ID.
type Identity struct {
	secret []byte
}

// NewIdentity creates an identity resolver; an empty secret disables JWT
func NewIdentity(secret string) *Identity {
	return &Identity{secret: []byte(secret)}
}

// Enabled reports whether bearer tokens are required
func (i *Identity) Enabled() bool {
	return len(i.secret) > 0
}

// Middleware rejects requests whose token is missing or invalid when JWT
// is enabled
func (i *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := i.Resolve(r)
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Authentication failed")
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		switch {
		case i.Enabled():
			r = r.WithContext(WithAuthenticatedUserID(r.Context(), userID))
		case userID != "":
			r = r.WithContext(WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

// Resolve extracts the user id from the request
func (i *Identity) Resolve(r *http.Request) (string, error) {
	if !i.Enabled() {
		return strings.TrimSpace(r.Header.Get("X-User-ID")), nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header required")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization header format")
	}
	return i.ParseToken(parts[1])
}

// ParseToken validates an HS256 token and returns its subject
func (i *Identity) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.New("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
