// Package fragment retrieves the shared navigation fragment and injects it
// into a page document.
package fragment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/nav"
)

// Failure kinds surfaced to the initialization boundary.
var (
	// ErrFragmentUnavailable covers transport failures and non-200 responses.
	ErrFragmentUnavailable = errors.New("navigation fragment unavailable")
	// ErrFragmentMalformed means the response body held no element to insert.
	ErrFragmentMalformed = errors.New("navigation fragment is malformed")
)

// maxFragmentSize bounds the fragment body read.
const maxFragmentSize = 1 << 20

// Loader performs the one-shot load-inject-mark sequence for a page. Each
// call to Load makes a single retrieval attempt; there is no retry and no
// timeout beyond what the caller's context imposes.
type Loader struct {
	marker *nav.Marker
	fetch  func(ctx context.Context) (string, error)
}

// NewHTTPLoader returns a Loader that retrieves the fragment with a GET to
// url. A nil client uses http.DefaultClient.
func NewHTTPLoader(url string, client *http.Client, marker *nav.Marker) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		marker: marker,
		fetch: func(ctx context.Context) (string, error) {
			return fetchHTTP(ctx, client, url)
		},
	}
}

// NewFileLoader returns a Loader that reads the fragment from a local file.
// The batch injector uses this when the fragment ships with the page tree.
func NewFileLoader(path string, marker *nav.Marker) *Loader {
	return &Loader{
		marker: marker,
		fetch: func(ctx context.Context) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("%w: reading %s: %v", ErrFragmentUnavailable, path, err)
			}
			return string(data), nil
		},
	}
}

// Load retrieves the fragment, inserts its first top-level element as the
// first child of the document's container, and then runs active-route
// marking exactly once. On any failure nothing is inserted, marking does not
// run, and the error is returned for the initialization boundary to report.
// The marking step is guaranteed to run only after insertion completes.
func (l *Loader) Load(ctx context.Context, doc dom.Document) error {
	markup, err := l.fetch(ctx)
	if err != nil {
		return err
	}
	if err := doc.InsertFragment(markup); err != nil {
		if errors.Is(err, dom.ErrEmptyFragment) {
			return fmt.Errorf("%w: %v", ErrFragmentMalformed, err)
		}
		return fmt.Errorf("inserting fragment: %w", err)
	}
	l.marker.Mark(doc)
	return nil
}

func fetchHTTP(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrFragmentUnavailable, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFragmentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s returned %s", ErrFragmentUnavailable, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentSize))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrFragmentUnavailable, err)
	}
	return string(body), nil
}
