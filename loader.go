package schemac

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Loader fetches the raw bytes of a schema document named by an absolute
// URL. Compiler.RegisterURLLoader installs one per URL scheme.
type Loader func(url string) ([]byte, error)

// loaderRegistry maps a URL scheme ("http", "https", "file", ...) to the
// Loader responsible for it, the same shape as the teacher's
// Compiler.Loaders map, just keyed and returning bytes directly instead of
// an io.ReadCloser.
type loaderRegistry struct {
	byScheme map[string]Loader
}

func newLoaderRegistry() *loaderRegistry {
	r := &loaderRegistry{byScheme: make(map[string]Loader)}
	r.registerDefaultHTTPLoader()
	return r
}

func (r *loaderRegistry) register(scheme string, l Loader) {
	r.byScheme[scheme] = l
}

// load fetches rawURL's contents, returning UnsupportedURLError if no
// loader is registered for its scheme and LoadURLError if the registered
// loader itself fails.
func (r *loaderRegistry) load(rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ParseURLError{URL: rawURL, Err: err}
	}
	loader, ok := r.byScheme[u.Scheme]
	if !ok {
		return nil, &UnsupportedURLError{URL: rawURL}
	}
	data, err := loader(rawURL)
	if err != nil {
		return nil, &LoadURLError{URL: rawURL, Err: err}
	}
	return data, nil
}

// registerDefaultHTTPLoader wires http/https to a plain http.Client with a
// fixed timeout, matching the teacher's setupLoaders exactly: fetching
// policy (retries, redirects, caching) is a loader plug-in's job, not this
// compiler's, so the default stays deliberately simple.
func (r *loaderRegistry) registerDefaultHTTPLoader() {
	client := &http.Client{Timeout: 10 * time.Second}

	fetch := func(rawURL string) ([]byte, error) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			return nil, &LoadURLError{URL: rawURL, Err: errStatusNotOK(resp.StatusCode)}
		}
		return io.ReadAll(resp.Body)
	}

	r.register("http", fetch)
	r.register("https", fetch)
}

type httpStatusError int

func (e httpStatusError) Error() string {
	return "unexpected HTTP status " + strconv.Itoa(int(e))
}

func errStatusNotOK(code int) error { return httpStatusError(code) }
