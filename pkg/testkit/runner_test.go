package testkit

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/shashiranjanraj/shakkar/pkg/http"
)

// passthroughHandler fetches a backend resource and relays its body, the
// minimal shape of a storefront page handler.
func passthroughHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := gohttp.Get("https://backend.test/items").Send()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(resp.Text())) //nolint:errcheck
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// RunDir must treat only the top-level *.json files as scenarios; body and
// response fixtures in a subdirectory stay out of the glob.
func TestRunDirIgnoresFixtureSubdirectory(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "relay_items.json"), `{
		"name": "relay items",
		"requestMethod": "GET",
		"requestUrl": "/items",
		"expectedCode": 200,
		"responseFileName": "fixtures/items.json",
		"isMockRequired": true,
		"backendMockStep": [
			{"matchUrl": "https://backend.test/items",
			 "returnData": {"bodyFileName": "fixtures/items.json"}}
		]
	}`)
	// A fixture that would fail scenario validation if globbed.
	writeFile(t, filepath.Join(dir, "fixtures", "items.json"), `{"items":["a","b"]}`)

	RunDir(t, passthroughHandler(), dir)
}

func TestLoadAllFromDirRejectsFixtureShapedFiles(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "ok.json"), `{
		"name": "ok", "requestUrl": "/x", "expectedCode": 200
	}`)
	writeFile(t, filepath.Join(dir, "not_a_scenario.json"), `{"items":["a"]}`)

	scenarios, errs := LoadAllFromDir(dir)

	require.Len(t, scenarios, 1)
	assert.Equal(t, "ok", scenarios[0].Name)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "name is required")
}
