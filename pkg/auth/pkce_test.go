package auth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shakkar/config"
)

func TestNewPKCEGeneratesFreshPair(t *testing.T) {
	a, err := NewPKCE()
	require.NoError(t, err)
	b, err := NewPKCE()
	require.NoError(t, err)

	// 32 random bytes base64url-encode to the RFC 7636 minimum length.
	assert.Len(t, a.Verifier, 43)
	assert.Equal(t, Challenge(a.Verifier), a.Challenge)
	assert.NotEqual(t, a.Verifier, b.Verifier)
}

func TestChallengeMatchesRFC7636Vector(t *testing.T) {
	// Appendix B of RFC 7636.
	got := Challenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", got)
}

func TestLoginURLCarriesPKCEParams(t *testing.T) {
	for k, v := range map[string]string{
		"AUTH_BASE_URL":     "https://auth.example.com",
		"AUTH_CLIENT_ID":    "client-123",
		"AUTH_REDIRECT_URI": "https://shop.example.com/callback",
		"AUTH_SCOPE":        "email+openid",
	} {
		t.Cleanup(config.SetForTesting(k, v))
	}

	u, err := url.Parse(LoginURL("the-challenge"))
	require.NoError(t, err)

	assert.Equal(t, "auth.example.com", u.Host)
	assert.Equal(t, "/login", u.Path)

	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "the-challenge", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
}

func TestLogoutURLPointsBackAtTheShop(t *testing.T) {
	t.Cleanup(config.SetForTesting("AUTH_BASE_URL", "https://auth.example.com"))
	t.Cleanup(config.SetForTesting("AUTH_REDIRECT_URI", "https://shop.example.com/callback"))

	u, err := url.Parse(LogoutURL())
	require.NoError(t, err)

	assert.Equal(t, "/logout", u.Path)
	assert.Equal(t, "https://shop.example.com/callback", u.Query().Get("logout_uri"))
}
