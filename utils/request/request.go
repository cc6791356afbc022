package request

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Fetch performs a single GET and returns the response body. Header
// key/value pairs ride along as a flat list.
func Fetch(ctx context.Context, client *http.Client, target string, headKvs ...string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if len(headKvs)%2 != 0 {
		return nil, errors.New("headers must be key/value pairs")
	}
	for i := 0; i < len(headKvs); i += 2 {
		req.Header.Set(headKvs[i], headKvs[i+1])
	}
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", target)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, errors.Errorf("fetch %s: status %d", target, res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", target)
	}
	return body, nil
}

// ResolveURL joins a possibly relative href against the page it was found
// on. Absolute hrefs pass through unchanged; unparseable input falls back
// to the base.
func ResolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return base
	}
	return b.ResolveReference(h).String()
}
