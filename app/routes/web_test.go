package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/app"
	gohttp "github.com/shashiranjanraj/shakkar/pkg/http"
	"github.com/shashiranjanraj/shakkar/pkg/testkit"
)

const apiBase = "https://api.test.example.com"

// newHandler assembles the full middleware-plus-routes stack, the same way
// the server binary does.
func newHandler(t *testing.T) http.Handler {
	t.Helper()
	t.Cleanup(config.SetForTesting("API_BASE_URL", apiBase))
	return app.New().Routes(Register).Handler()
}

// mockBackend intercepts every outgoing backend call for the test.
func mockBackend(t *testing.T, steps ...testkit.MockStep) *testkit.MockTransport {
	t.Helper()
	mt := testkit.NewMockTransport(&testkit.Scenario{Name: t.Name(), BackendMockStep: steps})
	gohttp.DefaultClient.Transport = mt
	t.Cleanup(gohttp.ResetTransport)
	return mt
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScenarios(t *testing.T) {
	testkit.RunDir(t, newHandler(t), "testdata")
}

func TestRootRedirectsToHome(t *testing.T) {
	w := get(t, newHandler(t), "/")

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
}

func TestHomePageRenders(t *testing.T) {
	w := get(t, newHandler(t), "/home")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shakkar Cookies")
}

func TestHealthz(t *testing.T) {
	w := get(t, newHandler(t), "/healthz")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["data"].(map[string]interface{})["status"])
}

func TestProductsPageListsCatalog(t *testing.T) {
	mockBackend(t, testkit.MockStep{
		MatchURL: apiBase + "/products",
		ReturnData: testkit.MockReturnData{Body: json.RawMessage(`{
			"products": [{"id":"p1","product_name":"Choco Chip","price":"3.50","inventory_count":"12","image":""}]
		}`)},
	})

	w := get(t, newHandler(t), "/products")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Choco Chip")
	assert.Contains(t, w.Body.String(), `name="qty:Choco Chip"`)
}

func TestCheckoutWithoutSelectionReturnsToProducts(t *testing.T) {
	mockBackend(t, testkit.MockStep{
		MatchURL: apiBase + "/products",
		ReturnData: testkit.MockReturnData{Body: json.RawMessage(`{
			"products": [{"id":"p1","product_name":"Choco Chip","price":"3.50","inventory_count":"12","image":""}]
		}`)},
	})

	w := postForm(t, newHandler(t), "/products", url.Values{"qty:Choco Chip": {"0"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
}

func TestCustomerFormWithoutSelectionRedirects(t *testing.T) {
	w := get(t, newHandler(t), "/customerinfoform")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
}

func TestEmployeePagesRequireSignIn(t *testing.T) {
	h := newHandler(t)

	for _, path := range []string{"/orders", "/orders/ord-1", "/generatereport"} {
		w := get(t, h, path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/signin", w.Header().Get("Location"), path)
	}
}

func TestSignInRedirectsToHostedLogin(t *testing.T) {
	t.Cleanup(config.SetForTesting("AUTH_BASE_URL", "https://auth.test.example.com"))
	t.Cleanup(config.SetForTesting("AUTH_CLIENT_ID", "client-1"))

	w := get(t, newHandler(t), "/signin")

	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "https://auth.test.example.com/login?"), loc)
	assert.Contains(t, loc, "code_challenge=")
	assert.Contains(t, loc, "code_challenge_method=S256")
}

func TestCallbackWithoutCodeSkipsExchange(t *testing.T) {
	mt := mockBackend(t, testkit.MockStep{
		MatchURL:    apiBase + "/exchange-token",
		MatchMethod: "POST",
		ReturnData:  testkit.MockReturnData{Body: json.RawMessage(`{"access_token":"at"}`)},
	})

	w := get(t, newHandler(t), "/callback")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
	assert.Zero(t, mt.CallCount(0), "exchange must not run without a code")
}

func TestCallbackWithoutVerifierSkipsExchange(t *testing.T) {
	// A code arrives but this session never started a sign-in, so there is
	// no stored verifier and the exchange cannot be completed.
	mt := mockBackend(t, testkit.MockStep{
		MatchURL:    apiBase + "/exchange-token",
		MatchMethod: "POST",
		ReturnData:  testkit.MockReturnData{Body: json.RawMessage(`{"access_token":"at"}`)},
	})

	w := get(t, newHandler(t), "/callback?code=abc123")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
	assert.Zero(t, mt.CallCount(0), "exchange must not run without a verifier")
}

func TestSignOutRedirectsToHostedLogout(t *testing.T) {
	t.Cleanup(config.SetForTesting("AUTH_BASE_URL", "https://auth.test.example.com"))

	w := get(t, newHandler(t), "/signout")

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://auth.test.example.com/logout?"))
}

func TestFragmentTokenRejectsEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/callback/fragment", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
