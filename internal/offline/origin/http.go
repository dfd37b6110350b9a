package origin

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HTTPOrigin forwards requests to a base URL. The request path is appended
// to the base path and the query is kept.
type HTTPOrigin struct {
	base      *url.URL
	transport http.RoundTripper
}

// NewHTTPOrigin parses base, which must be an absolute http(s) URL. A nil
// transport means http.DefaultTransport.
func NewHTTPOrigin(base string, transport http.RoundTripper) (*HTTPOrigin, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute http(s) URL", base)
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &HTTPOrigin{base: u, transport: transport}, nil
}

func (o *HTTPOrigin) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.RequestURI = ""

	u := *o.base
	u.Path = strings.TrimSuffix(o.base.Path, "/") + req.URL.Path
	u.RawPath = ""
	u.RawQuery = req.URL.RawQuery
	u.Fragment = ""

	out.URL = &u
	out.Host = u.Host

	return o.transport.RoundTrip(out)
}
