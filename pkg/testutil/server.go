package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FileServer serves files by decoded URL path and answers 404 for anything
// else. It is safe for concurrent requests.
type FileServer struct {
	*httptest.Server

	mu       sync.Mutex
	files    map[string][]byte
	requests []string
	escaped  map[string]bool
}

// NewFileServer starts a FileServer, closed when the test ends.
func NewFileServer(t testing.TB, files map[string][]byte) *FileServer {
	t.Helper()
	fs := &FileServer{
		files:   make(map[string][]byte, len(files)),
		escaped: make(map[string]bool),
	}
	for path, data := range files {
		fs.files[path] = data
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FileServer) serve(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	fs.requests = append(fs.requests, r.URL.Path)
	fs.escaped[r.URL.EscapedPath()] = true
	data, ok := fs.files[r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write(data)
}

// Set serves data at path.
func (fs *FileServer) Set(path string, data []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = data
}

// Delete stops serving path.
func (fs *FileServer) Delete(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.files, path)
}

// Reset stops serving every file.
func (fs *FileServer) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files = make(map[string][]byte)
}

// Requests returns the decoded paths requested so far, in order.
func (fs *FileServer) Requests() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.requests...)
}

// Hits returns the number of requests served.
func (fs *FileServer) Hits() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

// SawEscaped reports whether a request arrived with exactly this escaped
// path.
func (fs *FileServer) SawEscaped(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.escaped[path]
}
