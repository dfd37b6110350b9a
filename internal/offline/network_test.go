package offline_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"
)

var errOffline = errors.New("network unreachable")

// fakeNetwork serves fixed bodies by path and can be switched offline.
type fakeNetwork struct {
	mu      sync.Mutex
	offline bool
	assets  map[string]string
	status  map[string]int
	calls   []string
}

func newFakeNetwork(assets map[string]string) *fakeNetwork {
	return &fakeNetwork{assets: assets, status: map[string]int{}}
}

func (n *fakeNetwork) setOffline(v bool) {
	n.mu.Lock()
	n.offline = v
	n.mu.Unlock()
}

func (n *fakeNetwork) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *fakeNetwork) RoundTrip(req *http.Request) (*http.Response, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls = append(n.calls, req.Method+" "+req.URL.Path)
	if n.offline {
		return nil, errOffline
	}

	body, ok := n.assets[req.URL.Path]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
		body = "not found"
	}
	if s, ok := n.status[req.URL.Path]; ok {
		status = s
	}

	return &http.Response{
		Status:     http.StatusText(status),
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"text/plain"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Request:    req,
	}, nil
}

func shellAssets(tag string) map[string]string {
	return map[string]string{
		"/":           "root " + tag,
		"/index.html": "index " + tag,
		"/style.css":  "css " + tag,
		"/extra.json": "extra " + tag,
	}
}
