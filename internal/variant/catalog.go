package variant

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	lru "github.com/opencoff/golang-lru"

	"github.com/lox/hanabi-infeasible/internal/fileutil"
)

const (
	// CatalogURL is the upstream source of truth for the suit/variant catalog.
	CatalogURL = "https://raw.githubusercontent.com/Hanabi-Live/hanabi-live/main/packages/data/src/json/variants.json"

	fetchTimeout = 12 * time.Second
)

// CatalogMissing is returned when a variant cannot be found on disk or
// reconstructed from an upstream fetch.
type CatalogMissing struct {
	Variant string
	Err     error
}

func (e *CatalogMissing) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("variant catalog: %q not found: %v", e.Variant, e.Err)
	}
	return fmt.Sprintf("variant catalog: %q not found", e.Variant)
}

func (e *CatalogMissing) Unwrap() error { return e.Err }

// IOError wraps a failure writing or reading the on-disk catalog cache.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("variant catalog %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Catalog loads VariantSpecs from a disk cache, refreshing from CatalogURL
// on a cache miss, and keeps an in-memory LRU of parsed specs so repeated
// lookups across a bulk scan never re-parse the JSON file.
//
// A Catalog is safe for concurrent use: Spec values it returns are
// read-only and may be shared across goroutines.
type Catalog struct {
	cacheDir string
	client   *http.Client
	cache    lru.Cache
	url      string
}

// NewCatalog constructs a Catalog backed by cacheDir (created if absent)
// and an LRU of the given size for parsed specs.
func NewCatalog(cacheDir string, lruSize int) (*Catalog, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Err: err}
	}
	if lruSize <= 0 {
		lruSize = 32
	}
	c, err := lru.NewSimple(lruSize)
	if err != nil {
		return nil, fmt.Errorf("variant catalog: %w", err)
	}
	return &Catalog{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: fetchTimeout},
		cache:    c,
		url:      CatalogURL,
	}, nil
}

func (c *Catalog) cachePath() string {
	return filepath.Join(c.cacheDir, "variants.json")
}

// Load returns the Spec named name, consulting the in-memory LRU, then
// the disk cache, then an upstream fetch (which repopulates the disk
// cache) in that order.
func (c *Catalog) Load(name string) (*Spec, error) {
	if v, ok := c.cache.Get(name); ok {
		return v.(*Spec), nil
	}

	specs, err := c.readDiskCache()
	if errors.Is(err, os.ErrNotExist) {
		specs, err = c.fetchAndCache()
	}
	if err != nil {
		return nil, &CatalogMissing{Variant: name, Err: err}
	}

	for _, s := range specs {
		spec := s
		c.cache.Add(spec.Name, &spec)
	}
	if v, ok := c.cache.Get(name); ok {
		return v.(*Spec), nil
	}
	return nil, &CatalogMissing{Variant: name}
}

func (c *Catalog) readDiskCache() ([]Spec, error) {
	f, err := os.Open(c.cachePath())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeSpecs(f)
}

func (c *Catalog) fetchAndCache() ([]Spec, error) {
	specs, err := c.fetch(c.url)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(specs)
	if err != nil {
		return nil, &IOError{Op: "marshal", Err: err}
	}
	if err := fileutil.WriteFileAtomic(c.cachePath(), buf, 0o644); err != nil {
		return nil, &IOError{Op: "write", Err: err}
	}
	return specs, nil
}

func (c *Catalog) fetch(url string) ([]Spec, error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	return decodeSpecs(resp.Body)
}

func decodeSpecs(r io.Reader) ([]Spec, error) {
	var specs []Spec
	if err := json.NewDecoder(r).Decode(&specs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return specs, nil
}

// Refresh re-fetches the catalog from upstream regardless of what is
// cached on disk or in memory, repopulating both.
func (c *Catalog) Refresh() ([]Spec, error) {
	specs, err := c.fetchAndCache()
	if err != nil {
		return nil, &IOError{Op: "refresh", Err: err}
	}
	for _, s := range specs {
		spec := s
		c.cache.Add(spec.Name, &spec)
	}
	return specs, nil
}

// LoadOrDefault behaves like Load, but falls back to the built-in
// NoVariant() catalog entry when name is "No Variant" and no cache or
// upstream is reachable, so offline bulk scans of the default
// configuration always work without a network fetch.
func (c *Catalog) LoadOrDefault(name string) (*Spec, error) {
	spec, err := c.Load(name)
	if err == nil {
		return spec, nil
	}
	var missing *CatalogMissing
	if errors.As(err, &missing) && name == "No Variant" {
		return NoVariant(), nil
	}
	return nil, err
}
