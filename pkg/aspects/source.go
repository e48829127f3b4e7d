package aspects

import (
	"bytes"
	"context"
	_ "embed"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/aspectpath/pkg/httputil"
)

//go:embed aspects.json
var defaultJSON []byte

var defaultData = sync.OnceValues(func() (*Data, error) {
	return Read(bytes.NewReader(defaultJSON))
})

// DefaultSource is the [Open] source name of the embedded dataset.
const DefaultSource = "default"

// Default returns the embedded dataset. The returned value is shared and
// must not be modified.
func Default() *Data {
	d, err := defaultData()
	if err != nil {
		panic("aspects: embedded dataset: " + err.Error())
	}
	return d
}

// FetchTimeout bounds a single HTTP request made by [Fetch].
var FetchTimeout = 30 * time.Second

// Fetch downloads a dataset. URLs whose path ends in .toml are decoded as
// TOML, everything else as JSON. Server errors and rate limits are retried.
func Fetch(ctx context.Context, rawURL string) (*Data, error) {
	return fetch(ctx, httputil.NewClient(FetchTimeout), rawURL)
}

func fetch(ctx context.Context, c *httputil.Client, rawURL string) (*Data, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if u, err := url.Parse(rawURL); err == nil && isTOML(u.Path) {
		return ReadTOML(bytes.NewReader(body))
	}
	return Read(bytes.NewReader(body))
}

// Open loads a dataset from source: the embedded dataset for "" or
// [DefaultSource], an HTTP(S) URL via [Fetch], or a local file via [Load].
func Open(ctx context.Context, source string) (*Data, error) {
	switch {
	case source == "" || source == DefaultSource:
		return Default(), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return Fetch(ctx, source)
	default:
		return Load(source)
	}
}
