package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/talika/judgeboard/internal/domain/model"
)

type sessionKey struct{}

// SessionFrom returns the authenticated session attached to the request
// context, or nil outside an authenticated handler.
func SessionFrom(ctx context.Context) *model.Session {
	s, _ := ctx.Value(sessionKey{}).(*model.Session)
	return s
}

// Authenticator validates the static bearer token carried by admin requests and
// attaches the operator session to the request context.
type Authenticator struct {
	token   string
	session model.Session
}

// NewAuthenticator builds an Authenticator for a static admin token.
func NewAuthenticator(token, adminName, adminEmail string) *Authenticator {
	return &Authenticator{
		token: token,
		session: model.Session{
			UID:   "admin",
			Name:  adminName,
			Email: adminEmail,
			Role:  model.RoleAdmin,
		},
	}
}

// RequireAdmin rejects requests without the admin bearer token.
func (a *Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "api.auth"
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", NewKind(op, ErrUnauthorized))
			return
		}
		if token != a.token {
			writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrForbidden))
			return
		}
		if a.session.Role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrForbidden))
			return
		}
		session := a.session
		ctx := context.WithValue(r.Context(), sessionKey{}, &session)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
