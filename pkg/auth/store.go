package auth

import (
	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/crypt"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/session"
)

// Storage keys. These mirror the keys the browser front end used in local
// storage, so dashboards and docs keep meaning the same thing.
const (
	KeyAccessToken  = "accessToken"
	KeyIDToken      = "idToken"
	KeyRefreshToken = "refreshToken"
	KeyCodeVerifier = "codeVerifier"
)

// TokenSet is the token triple returned by the backend's token exchange.
// All three are opaque strings owned by the authorization server.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store is the persistence port for auth state. Views never touch the
// session directly for tokens; they go through this interface so tests can
// substitute an in-memory double.
type Store interface {
	Tokens() (TokenSet, bool)
	SetTokens(TokenSet)
	Verifier() (string, bool)
	SetVerifier(string)
	Clear()
}

// ─── Session-backed store ─────────────────────────────────────────────────────

// SessionStore persists auth state in the visitor's server session.
// The refresh token is encrypted at rest when APP_KEY is configured.
type SessionStore struct {
	Sess *session.Session
}

// NewSessionStore wraps a session in the Store port.
func NewSessionStore(sess *session.Session) *SessionStore {
	return &SessionStore{Sess: sess}
}

func (s *SessionStore) Tokens() (TokenSet, bool) {
	access, ok := s.Sess.GetString(KeyAccessToken)
	if !ok || access == "" {
		return TokenSet{}, false
	}
	id, _ := s.Sess.GetString(KeyIDToken)
	refresh, _ := s.Sess.GetString(KeyRefreshToken)
	return TokenSet{
		AccessToken:  access,
		IDToken:      id,
		RefreshToken: unprotect(refresh),
	}, true
}

func (s *SessionStore) SetTokens(t TokenSet) {
	s.Sess.Set(KeyAccessToken, t.AccessToken)
	s.Sess.Set(KeyIDToken, t.IDToken)
	s.Sess.Set(KeyRefreshToken, protect(t.RefreshToken))
}

func (s *SessionStore) Verifier() (string, bool) {
	v, ok := s.Sess.GetString(KeyCodeVerifier)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *SessionStore) SetVerifier(v string) {
	s.Sess.Set(KeyCodeVerifier, v)
}

// Clear removes every persisted auth key (sign-out).
func (s *SessionStore) Clear() {
	s.Sess.Delete(KeyAccessToken)
	s.Sess.Delete(KeyIDToken)
	s.Sess.Delete(KeyRefreshToken)
	s.Sess.Delete(KeyCodeVerifier)
}

// protect encrypts a token for storage when APP_KEY is configured.
func protect(token string) string {
	if token == "" || config.AppKey() == "" {
		return token
	}
	enc, err := crypt.Encrypt(token)
	if err != nil {
		logger.Warn("auth: refresh token stored unencrypted", "error", err)
		return token
	}
	return "enc:" + enc
}

func unprotect(stored string) string {
	if len(stored) < 4 || stored[:4] != "enc:" {
		return stored
	}
	plain, err := crypt.Decrypt(stored[4:])
	if err != nil {
		logger.Warn("auth: refresh token decrypt failed", "error", err)
		return ""
	}
	return plain
}

// ─── In-memory store (tests) ──────────────────────────────────────────────────

// MemStore is an in-memory Store for tests.
type MemStore struct {
	tokens   TokenSet
	hasToken bool
	verifier string
}

func (m *MemStore) Tokens() (TokenSet, bool) { return m.tokens, m.hasToken }
func (m *MemStore) SetTokens(t TokenSet)     { m.tokens, m.hasToken = t, true }
func (m *MemStore) Verifier() (string, bool) { return m.verifier, m.verifier != "" }
func (m *MemStore) SetVerifier(v string)     { m.verifier = v }
func (m *MemStore) Clear()                   { *m = MemStore{} }
