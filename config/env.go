package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIBaseURL   = "http://localhost:3000"
	defaultAuthBaseURL  = "https://auth.example.com"
	defaultRedirectURI  = "http://localhost:8080/callback"
	defaultAuthScope    = "email+openid"
	defaultPollInterval = "2000"
	defaultRedisAddr    = "localhost:6379"
	defaultAppPort      = "8080"
	defaultAppEnv       = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"API_BASE_URL":      defaultAPIBaseURL,
		"AUTH_BASE_URL":     defaultAuthBaseURL,
		"AUTH_CLIENT_ID":    "",
		"AUTH_REDIRECT_URI": defaultRedirectURI,
		"AUTH_SCOPE":        defaultAuthScope,
		"POLL_INTERVAL_MS":  defaultPollInterval,
		"TEST_MODE":         "false",
		"REDIS_ADDR":        defaultRedisAddr,
		"REDIS_PASSWORD":    "",
		"APP_PORT":          defaultAppPort,
		"APP_ENV":           defaultAppEnv,
		"APP_KEY":           "",
	}
}

// ── Backend API ──────────────────────────────────────────────────────────────

// APIBaseURL is the base URL of the commerce backend (API gateway).
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

// PollInterval is the fixed delay between job-status polls.
func PollInterval() time.Duration {
	_ = Load()
	ms, err := strconv.Atoi(get("POLL_INTERVAL_MS", defaultPollInterval))
	if err != nil || ms <= 0 {
		ms = 2000
	}
	return time.Duration(ms) * time.Millisecond
}

// ── Hosted authorization server ──────────────────────────────────────────────

func AuthBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("AUTH_BASE_URL", defaultAuthBaseURL), "/")
}

func AuthClientID() string {
	_ = Load()
	return get("AUTH_CLIENT_ID", "")
}

func AuthRedirectURI() string {
	_ = Load()
	return get("AUTH_REDIRECT_URI", defaultRedirectURI)
}

func AuthScope() string {
	_ = Load()
	return get("AUTH_SCOPE", defaultAuthScope)
}

// TestMode reports whether the dev-only "browse as signed-in" toggle is on.
// Off unless explicitly enabled.
func TestMode() bool {
	_ = Load()
	return get("TEST_MODE", "false") == "true"
}

// ── Infrastructure ───────────────────────────────────────────────────────────

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// AppKey is the secret used to encrypt tokens at rest.
func AppKey() string {
	_ = Load()
	return get("APP_KEY", "")
}

// MongoLogURI enables the async MongoDB log sink when non-empty.
func MongoLogURI() string {
	_ = Load()
	return get("MONGO_LOG_URI", "")
}

// ── Image storage ────────────────────────────────────────────────────────────

func StorageDefault() string {
	_ = Load()
	return get("STORAGE_DISK", "local")
}

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "storage")
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "http://localhost:8080/storage")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Loading ──────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// SetForTesting overrides a config key for the duration of a test.
// The returned func restores the previous value.
func SetForTesting(key, value string) func() {
	_ = Load()
	mu.Lock()
	prev := values[key]
	values[key] = value
	mu.Unlock()
	return func() {
		mu.Lock()
		values[key] = prev
		mu.Unlock()
	}
}
