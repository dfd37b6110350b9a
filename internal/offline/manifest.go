package offline

import (
	"net/http"
	"path"
	"strings"
)

// Manifest is the ordered list of asset paths cached at install. Paths are
// relative to the shell root, as in "./index.html".
type Manifest []string

// DefaultManifest lists the application shell.
func DefaultManifest() Manifest {
	return Manifest{
		"./",
		"./index.html",
		"./login.html",
		"./register.html",
		"./dashboard.html",
		"./style.css",
		"./main.js",
		"./manifest.json",
		"./assets/icons/icon-192.png",
		"./assets/icons/icon-512.png",
	}
}

// Paths returns the absolute request path of every asset, in order.
func (m Manifest) Paths() []string {
	paths := make([]string, 0, len(m))
	for _, asset := range m {
		paths = append(paths, AssetPath(asset))
	}
	return paths
}

// Keys returns the request key every asset is stored under.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, p := range m.Paths() {
		keys = append(keys, RequestKey(http.MethodGet, p, ""))
	}
	return keys
}

// AssetPath turns a manifest entry into an absolute URL path:
// "./" becomes "/", "./style.css" becomes "/style.css".
func AssetPath(asset string) string {
	p := strings.TrimPrefix(asset, ".")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

// RequestKey is the identity a response is cached under: method, path and
// raw query. Two requests match only if all three are byte-identical.
func RequestKey(method, urlPath, rawQuery string) string {
	key := method + " " + urlPath
	if rawQuery != "" {
		key += "?" + rawQuery
	}
	return key
}

// KeyOf returns the cache key of r.
func KeyOf(r *http.Request) string {
	return RequestKey(r.Method, r.URL.Path, r.URL.RawQuery)
}
