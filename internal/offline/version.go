package offline

// CacheVersion names one generation of cached assets.
type CacheVersion string

// DefaultVersion is the cache name shipped with the current shell.
const DefaultVersion CacheVersion = "agrilink-gh-v1"

// CacheTag classifies a cache name relative to the current version.
type CacheTag int

const (
	CacheStale CacheTag = iota
	CacheCurrent
)

func (t CacheTag) String() string {
	if t == CacheCurrent {
		return "current"
	}
	return "stale"
}

// Classify reports whether name is this version. Only exact equality
// counts; a name that merely shares a prefix is stale.
func (v CacheVersion) Classify(name string) CacheTag {
	if name == string(v) {
		return CacheCurrent
	}
	return CacheStale
}

func (v CacheVersion) String() string { return string(v) }
