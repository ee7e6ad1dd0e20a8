// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// fixtureServer serves body with the given status and records the query of
// the last request it saw.
type fixtureServer struct {
	*httptest.Server
	mu     sync.Mutex
	query  url.Values
	header http.Header
}

func newFixtureServer(t *testing.T, status int, contentType, body string) *fixtureServer {
	t.Helper()
	fs := &fixtureServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.query = r.URL.Query()
		fs.header = r.Header.Clone()
		fs.mu.Unlock()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fixtureServer) lastQuery() url.Values {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.query
}

func (fs *fixtureServer) lastHeader() http.Header {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.header
}

// setBase points an endpoint var at a test server for the duration of t.
func setBase(t *testing.T, base *string, value string) {
	t.Helper()
	old := *base
	*base = value
	t.Cleanup(func() { *base = old })
}
