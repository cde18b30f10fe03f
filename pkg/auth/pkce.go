// Package auth implements the storefront's sign-in plumbing: PKCE pair
// generation, hosted authorization-server URL building, the token store, and
// ID-token claims decoding.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/shashiranjanraj/shakkar/config"
)

// verifierBytes yields a 43-character base64url verifier, the RFC 7636 minimum.
const verifierBytes = 32

// PKCE is a verifier/challenge pair. The verifier stays with the session; the
// challenge goes to the authorization server. The pair is generated exactly
// once per sign-in navigation and must survive the full-page redirect, so the
// verifier is persisted in the token store before redirecting.
type PKCE struct {
	Verifier  string
	Challenge string
}

// NewPKCE generates a cryptographically random verifier and its S256 challenge.
func NewPKCE() (PKCE, error) {
	b := make([]byte, verifierBytes)
	if _, err := rand.Read(b); err != nil {
		return PKCE{}, fmt.Errorf("auth: generate verifier: %w", err)
	}

	verifier := base64.RawURLEncoding.EncodeToString(b)
	return PKCE{Verifier: verifier, Challenge: Challenge(verifier)}, nil
}

// Challenge derives the S256 code challenge for a verifier:
// base64url(sha256(verifier)), unpadded.
func Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// LoginURL builds the hosted authorization endpoint URL with the standard
// OAuth2/PKCE query parameters.
func LoginURL(challenge string) string {
	return fmt.Sprintf(
		"%s/login?client_id=%s&response_type=code&scope=%s&redirect_uri=%s&code_challenge=%s&code_challenge_method=S256",
		config.AuthBaseURL(),
		config.AuthClientID(),
		config.AuthScope(),
		config.AuthRedirectURI(),
		challenge,
	)
}

// LogoutURL builds the hosted logout endpoint URL. The client id and redirect
// URI are the same values used at sign-in.
func LogoutURL() string {
	return fmt.Sprintf(
		"%s/logout?client_id=%s&logout_uri=%s&redirect_uri=%s",
		config.AuthBaseURL(),
		config.AuthClientID(),
		config.AuthRedirectURI(),
		config.AuthRedirectURI(),
	)
}
