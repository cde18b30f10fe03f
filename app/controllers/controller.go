// Package controllers holds the HTTP handlers for every storefront page.
// Controllers stay thin: decode and validate input, call a service, render a
// view. Backend failures render in-place; they never take down the shell.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/auth"
	"github.com/shashiranjanraj/shakkar/pkg/session"
	"github.com/shashiranjanraj/shakkar/app/views"
)

// authStore returns the session-backed token store for this request.
func authStore(r *http.Request) auth.Store {
	return auth.NewSessionStore(session.FromCtx(r))
}

// bearerToken returns the access token, or "" when signed out (test mode
// included; the backend rejects tokenless calls and the views show the
// empty state).
func bearerToken(r *http.Request) string {
	if tokens, ok := authStore(r).Tokens(); ok {
		return tokens.AccessToken
	}
	return ""
}

// page assembles the shared template envelope: title, sign-in state for the
// nav, display identity, banner visibility.
func page(r *http.Request, title string, banner bool, data interface{}) views.Page {
	store := authStore(r)
	p := views.Page{
		Title:      title,
		State:      auth.Resolve(store, config.TestMode()),
		ShowBanner: banner,
		Data:       data,
	}

	if tokens, ok := store.Tokens(); ok && tokens.IDToken != "" {
		if ident, err := auth.IdentityFromIDToken(tokens.IDToken); err == nil {
			p.Identity = ident.Email
			if p.Identity == "" {
				p.Identity = ident.Username
			}
		}
	}
	return p
}

// renderError shows the shared error page with the backend's message
// verbatim. The event banner stays hidden on error surfaces.
func renderError(w http.ResponseWriter, r *http.Request, message string) {
	views.Render(w, "error", page(r, "Error", false, struct{ Message string }{message}))
}
