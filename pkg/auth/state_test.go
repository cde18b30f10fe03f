package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	withTokens := &MemStore{}
	withTokens.SetTokens(TokenSet{AccessToken: "tok"})

	tests := []struct {
		name     string
		store    Store
		testMode bool
		want     State
	}{
		{"no tokens, no test mode", &MemStore{}, false, SignedOut},
		{"no tokens, test mode on", &MemStore{}, true, TestMode},
		{"tokens present", withTokens, false, SignedIn},
		{"tokens win over test mode", withTokens, true, SignedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.store, tt.testMode))
		})
	}
}

func TestStateNavVisibility(t *testing.T) {
	assert.False(t, SignedOut.ShowEmployeeNav())
	assert.True(t, SignedOut.ShowSignIn())

	// Test mode shows both: the employee pages are browsable and the
	// sign-in link stays so a real session can still be started.
	assert.True(t, TestMode.ShowEmployeeNav())
	assert.True(t, TestMode.ShowSignIn())

	assert.True(t, SignedIn.ShowEmployeeNav())
	assert.False(t, SignedIn.ShowSignIn())
}
