package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the display identity decoded from an ID token.
type Identity struct {
	Email    string
	Username string
}

// IdentityFromIDToken decodes the claims of a hosted-auth ID token for
// display purposes. The token's signature is NOT verified here: the token
// was obtained over TLS from the backend's exchange endpoint and is only
// used to label the header ("Signed in as ..."). Authorization stays with
// the backend via the bearer access token.
func IdentityFromIDToken(idToken string) (Identity, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return Identity{}, fmt.Errorf("auth: parse id token: %w", err)
	}

	ident := Identity{}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if username, ok := claims["cognito:username"].(string); ok {
		ident.Username = username
	} else if sub, ok := claims["sub"].(string); ok {
		ident.Username = sub
	}
	return ident, nil
}
