package storage

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubDisk answers URL lookups; everything else is unused here.
type stubDisk struct{ base string }

func (d stubDisk) Put(string, []byte) error                { return nil }
func (d stubDisk) PutStream(string, io.Reader) error       { return nil }
func (d stubDisk) Get(string) ([]byte, error)              { return nil, nil }
func (d stubDisk) GetStream(string) (io.ReadCloser, error) { return nil, nil }
func (d stubDisk) Exists(string) bool                      { return false }
func (d stubDisk) Missing(string) bool                     { return true }
func (d stubDisk) Size(string) (int64, error)              { return 0, nil }
func (d stubDisk) LastModified(string) (time.Time, error)  { return time.Time{}, nil }
func (d stubDisk) URL(path string) string                  { return d.base + "/" + path }
func (d stubDisk) Delete(string) error                     { return nil }

func (d stubDisk) SignedURL(p string, _ time.Duration) (string, error) { return d.URL(p), nil }

// withDisks swaps the manager state for the test and restores it after.
func withDisks(t *testing.T, d map[string]Disk, def string) {
	t.Helper()
	managerMu.Lock()
	savedDisks, savedDefault := disks, defaultDisk
	disks, defaultDisk = d, def
	managerMu.Unlock()

	t.Cleanup(func() {
		managerMu.Lock()
		disks, defaultDisk = savedDisks, savedDefault
		managerMu.Unlock()
	})
}

func TestImageURLPassesThroughCompleteRefs(t *testing.T) {
	withDisks(t, map[string]Disk{}, "")

	assert.Equal(t, "https://cdn.example.com/a.png", ImageURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://cdn.example.com/a.png", ImageURL("http://cdn.example.com/a.png"))
	assert.Equal(t, "/static/img/logo.png", ImageURL("/static/img/logo.png"))
}

func TestImageURLEmptyRefGetsPlaceholder(t *testing.T) {
	withDisks(t, map[string]Disk{}, "")

	assert.Equal(t, "/static/img/placeholder.svg", ImageURL(""))
	assert.Equal(t, "/static/img/placeholder.svg", ImageURL("   "))
}

func TestImageURLObjectKeyWithoutBootedStorage(t *testing.T) {
	// Handler-only tests never call Connect; rendering must not panic.
	withDisks(t, map[string]Disk{}, "")

	assert.Equal(t, "/static/img/placeholder.svg", ImageURL("sugar-1kg.jpg"))
}

func TestImageURLObjectKeyResolvesOnDefaultDisk(t *testing.T) {
	withDisks(t, map[string]Disk{"local": stubDisk{base: "http://localhost:8080/storage"}}, "local")

	assert.Equal(t, "http://localhost:8080/storage/sugar-1kg.jpg", ImageURL("sugar-1kg.jpg"))
}

func TestUsePanicsOnUnknownDisk(t *testing.T) {
	withDisks(t, map[string]Disk{}, "")

	assert.Panics(t, func() { Use("s3") })
}
