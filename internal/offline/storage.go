package offline

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
)

// Entry is one stored response.
type Entry struct {
	Key    string
	Status int
	Header http.Header
	Body   []byte
}

// Response rebuilds an *http.Response for req from the stored copy.
func (e *Entry) Response(req *http.Request) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Length", strconv.Itoa(len(e.Body)))

	return &http.Response{
		Status:        strconv.Itoa(e.Status) + " " + http.StatusText(e.Status),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}

// Storage holds named caches of entries.
//
// PutAll creates the cache and stores all entries atomically: either every
// entry is visible afterwards or none is. Match returns common.ErrNotFound
// when the cache has no entry for key. Delete reports whether the cache
// existed.
type Storage interface {
	Keys(ctx context.Context) ([]string, error)
	PutAll(ctx context.Context, cache string, entries []Entry) error
	Match(ctx context.Context, cache, key string) (*Entry, error)
	Delete(ctx context.Context, cache string) (bool, error)
}
