// Package buildtest provides a fake build backend for tests.
package buildtest

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/arcbuilder/pkg/build"
)

// Recorder is a build.Backend that records requests and answers with
// canned results keyed by MRA file name.
type Recorder struct {
	mu       sync.Mutex
	requests []build.Request
	results  map[string]build.Result
	errs     map[string]error
}

var _ build.Backend = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		results: make(map[string]build.Result),
		errs:    make(map[string]error),
	}
}

// Respond sets the result returned for an MRA name.
func (r *Recorder) Respond(mraName string, result build.Result) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[mraName] = result
	return r
}

// Fail makes builds of an MRA name return err.
func (r *Recorder) Fail(mraName string, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[mraName] = err
	return r
}

// Build implements build.Backend.
func (r *Recorder) Build(_ context.Context, req build.Request) (build.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	name := filepath.Base(req.MRAPath)
	return r.results[name], r.errs[name]
}

// Requests returns the recorded requests in call order.
func (r *Recorder) Requests() []build.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]build.Request(nil), r.requests...)
}
