package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shakkar/pkg/session"
)

func TestMemStoreRoundTrip(t *testing.T) {
	var m MemStore

	_, ok := m.Tokens()
	assert.False(t, ok)

	m.SetVerifier("ver")
	m.SetTokens(TokenSet{AccessToken: "a", IDToken: "i", RefreshToken: "r"})

	got, ok := m.Tokens()
	require.True(t, ok)
	assert.Equal(t, TokenSet{AccessToken: "a", IDToken: "i", RefreshToken: "r"}, got)

	v, ok := m.Verifier()
	require.True(t, ok)
	assert.Equal(t, "ver", v)

	m.Clear()
	_, ok = m.Tokens()
	assert.False(t, ok)
	_, ok = m.Verifier()
	assert.False(t, ok)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	sess := session.FromCtx(httptest.NewRequest("GET", "/", nil))
	store := NewSessionStore(sess)

	_, ok := store.Tokens()
	assert.False(t, ok)

	store.SetVerifier("ver")
	store.SetTokens(TokenSet{AccessToken: "a", IDToken: "i", RefreshToken: "r"})

	got, ok := store.Tokens()
	require.True(t, ok)
	assert.Equal(t, "a", got.AccessToken)
	assert.Equal(t, "i", got.IDToken)
	assert.Equal(t, "r", got.RefreshToken)
}

func TestSessionStoreClearRemovesEveryKey(t *testing.T) {
	sess := session.FromCtx(httptest.NewRequest("GET", "/", nil))
	store := NewSessionStore(sess)

	store.SetVerifier("ver")
	store.SetTokens(TokenSet{AccessToken: "a", IDToken: "i", RefreshToken: "r"})
	store.Clear()

	for _, key := range []string{KeyAccessToken, KeyIDToken, KeyRefreshToken, KeyCodeVerifier} {
		_, ok := sess.Get(key)
		assert.False(t, ok, "key %q should be gone", key)
	}
}

func TestSessionStoreEmptyAccessTokenMeansSignedOut(t *testing.T) {
	sess := session.FromCtx(httptest.NewRequest("GET", "/", nil))
	sess.Set(KeyAccessToken, "")

	_, ok := NewSessionStore(sess).Tokens()
	assert.False(t, ok)
}
