package build

import "context"

// Request is one invocation of the build tool.
type Request struct {
	MRAPath     string
	ROMCacheDir string
	OutDir      string
	// OutputName forces the produced file name. Empty lets the tool derive
	// it from the MRA.
	OutputName string
}

// Result is what the tool printed.
type Result struct {
	Stdout string
	Stderr string
}

// Backend builds ARC files. The error covers failures to run the tool at
// all; a tool that ran and complained reports it on Stderr.
type Backend interface {
	Build(ctx context.Context, req Request) (Result, error)
}
