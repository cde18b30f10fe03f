package auth

// State is the sign-in state consumed by the navigation shell. It replaces
// the original nest of boolean checks with one enum resolved in a single
// place.
type State int

const (
	// SignedOut — no access token; only the public pages are linked.
	SignedOut State = iota
	// TestMode — not signed in, but the dev-only toggle exposes the
	// employee pages without a token. Off by default.
	TestMode
	// SignedIn — a token set is present.
	SignedIn
)

func (s State) String() string {
	switch s {
	case TestMode:
		return "test-mode"
	case SignedIn:
		return "signed-in"
	default:
		return "signed-out"
	}
}

// ShowEmployeeNav reports whether the orders/report/sign-out links render.
func (s State) ShowEmployeeNav() bool { return s != SignedOut }

// ShowSignIn reports whether the sign-in link renders.
func (s State) ShowSignIn() bool { return s != SignedIn }

// Resolve computes the sign-in state from the token store and the test-mode
// config flag. Pure; the shell calls it once per request.
func Resolve(store Store, testMode bool) State {
	if _, ok := store.Tokens(); ok {
		return SignedIn
	}
	if testMode {
		return TestMode
	}
	return SignedOut
}
