package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/session"
)

// WithSession resolves the sid cookie into a session and attaches it to the
// request context. Requests without a valid session pass through
// unauthenticated; the gates below decide what that means per route.
func WithSession(store session.Store, cookieKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieKey)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			s, ok := store.Get(c.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.With(r.Context(), s)))
		})
	}
}

// isNavigation reports whether the request is a browser page load rather than
// a fetch call. Page loads get a redirect to the login page, fetches get a
// JSON 401.
func isNavigation(r *http.Request) bool {
	return r.Method == http.MethodGet &&
		strings.Contains(r.Header.Get("Accept"), "text/html")
}

func RequireSession() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := session.Use(r.Context()); !ok {
				if isNavigation(r) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				_ = httpapi.WriteError(w, http.StatusUnauthorized,
					"UNAUTHORIZED", "sign in to continue", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a subtree to a single role. An authenticated user with
// the wrong role gets a 403, never a login redirect.
func RequireRole(role session.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := session.UseRole(r.Context())
			if !ok {
				if isNavigation(r) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				_ = httpapi.WriteError(w, http.StatusUnauthorized,
					"UNAUTHORIZED", "sign in to continue", nil)
				return
			}
			if got != role {
				_ = httpapi.WriteError(w, http.StatusForbidden,
					"FORBIDDEN", "you do not have access to this page", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
