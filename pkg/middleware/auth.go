package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/auth"
	"github.com/shashiranjanraj/shakkar/pkg/session"
)

// RequireSignIn redirects signed-out visitors to /signin. Test mode counts
// as signed in for navigation purposes; the backend still rejects its
// token-less API calls, which the views surface as empty lists.
func RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := auth.NewSessionStore(session.FromCtx(r))

		if auth.Resolve(store, config.TestMode()) == auth.SignedOut {
			http.Redirect(w, r, "/signin", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
