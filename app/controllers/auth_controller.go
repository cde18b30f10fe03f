package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shakkar/app/services/backend"
	"github.com/shashiranjanraj/shakkar/pkg/auth"
	"github.com/shashiranjanraj/shakkar/pkg/bind"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/response"
	"github.com/shashiranjanraj/shakkar/pkg/session"
)

// AuthController owns the PKCE sign-in flow: redirect out, exchange on
// callback, and sign-out.
type AuthController struct {
	backend *backend.Client
}

func NewAuthController(client *backend.Client) *AuthController {
	return &AuthController{backend: client}
}

// SignIn generates the verifier/challenge pair exactly once per visit,
// persists the verifier in the session and redirects to the hosted login.
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	pkce, err := auth.NewPKCE()
	if err != nil {
		logger.WithCtx(r.Context()).Error("pkce generation failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	authStore(r).SetVerifier(pkce.Verifier)
	if err := session.FromCtx(r).Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("verifier save failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	http.Redirect(w, r, auth.LoginURL(pkce.Challenge), http.StatusFound)
}

// Callback completes the code-for-tokens exchange. A missing code or missing
// stored verifier is logged and leaves the visitor signed out; no retry.
func (c *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Warn("callback without authorization code")
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}

	store := authStore(r)
	verifier, ok := store.Verifier()
	if !ok {
		log.Warn("callback without stored verifier, exchange skipped")
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}

	tokens, err := c.backend.ExchangeToken(r.Context(), code, verifier)
	if err != nil {
		log.Error("token exchange failed", "error", err)
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}

	store.SetTokens(tokens)
	if err := session.FromCtx(r).Save(w); err != nil {
		log.Error("token save failed", "error", err)
	}
	http.Redirect(w, r, "/home", http.StatusFound)
}

// FragmentToken accepts an implicit-flow ID token lifted from the URL
// fragment by the shell script. Best-effort compatibility path only; it
// never overwrites an existing token set.
func (c *AuthController) FragmentToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDToken string `json:"id_token" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil || len(errs) > 0 {
		response.Error(w, http.StatusBadRequest, "id_token required")
		return
	}

	store := authStore(r)
	if _, ok := store.Tokens(); ok {
		response.Success(w, map[string]string{"status": "already signed in"})
		return
	}

	// The ID token doubles as the access token on this legacy path.
	store.SetTokens(auth.TokenSet{AccessToken: body.IDToken, IDToken: body.IDToken})
	if err := session.FromCtx(r).Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("fragment token save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "session save failed")
		return
	}
	response.Success(w, map[string]string{"status": "signed in"})
}

// SignOut clears every persisted auth key, invalidates the session and
// redirects to the hosted logout with the sign-in client id and redirect URI.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	authStore(r).Clear()

	sess := session.FromCtx(r)
	sess.Invalidate()
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("session invalidate failed", "error", err)
	}

	http.Redirect(w, r, auth.LogoutURL(), http.StatusFound)
}
